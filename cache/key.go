package cache

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key returns a deterministic cache key for the operation and its arguments:
// op + ":" + hex(xxhash64(json(args))).
// Map arguments are stable as encoding/json sorts map keys.
func Key(op string, args ...any) string {
	if args == nil {
		args = []any{}
	}
	js, err := json.Marshal(args)
	if err != nil {
		// unserializable arguments fall back to their printed form
		js = []byte(fmt.Sprintf("%#v", args))
	}
	return op + ":" + strconv.FormatUint(xxhash.Sum64(js), 16)
}
