package tools

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/pkg/metricskey"
	"github.com/effective-security/masamcp/schema"
	"github.com/effective-security/masamcp/utils"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	mcp "github.com/metoro-io/mcp-golang"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "tools")

var validate = validator.New()

// RunFunc implements the tool
type RunFunc[I any, O any] func(context.Context, *I) (*O, error)

// Func is a tool over a typed function.
// The input is validated with `validate` tags before the function is called.
type Func[I any, O any] struct {
	name        string
	description string
	run         RunFunc[I, O]
}

var _ Tool[struct{}, struct{}] = (*Func[struct{}, struct{}])(nil)
var _ MCPTool[struct{}] = (*Func[struct{}, struct{}])(nil)

// NewFunc returns a new tool
func NewFunc[I any, O any](name, description string, run RunFunc[I, O]) *Func[I, O] {
	return &Func[I, O]{
		name:        name,
		description: description,
		run:         run,
	}
}

func (t *Func[I, O]) Name() string {
	return t.name
}

func (t *Func[I, O]) Description() string {
	return t.description
}

// Parameters returns JSON schema of the input
func (t *Func[I, O]) Parameters() any {
	sc, err := schema.New(reflect.TypeFor[I]())
	if err != nil {
		logger.KV(xlog.ERROR, "tool", t.name, "err", err.Error())
		return nil
	}
	return sc.Parameters
}

// Example returns an example of the input
func (t *Func[I, O]) Example() any {
	return schema.Example(reflect.TypeFor[I]())
}

// Run validates the input and calls the tool function
func (t *Func[I, O]) Run(ctx context.Context, req *I) (*O, error) {
	started := time.Now()
	defer metricskey.PerfToolCall.MeasureSince(started, t.name)

	res, err := t.validateAndRun(ctx, req)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, t.name)
		logger.ContextKV(ctx, xlog.ERROR,
			"tool", t.name,
			"msg", "["+t.name+"][ERR]",
			"err", err.Error(),
		)
		return nil, err
	}
	metricskey.StatsToolCallsSucceeded.IncrCounter(1, t.name)
	return res, nil
}

func (t *Func[I, O]) validateAndRun(ctx context.Context, req *I) (*O, error) {
	if req == nil {
		return nil, errors.WithMessage(ErrInvalidInput, "empty request")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, errors.WithMessagef(ErrInvalidInput, "%s failed on %q", verrs[0].Field(), verrs[0].Tag())
		}
		return nil, errors.WithMessage(ErrInvalidInput, err.Error())
	}
	return t.run(ctx, req)
}

// Call executes the tool with JSON input and returns JSON result
func (t *Func[I, O]) Call(ctx context.Context, input string) (string, error) {
	var req I
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		logger.ContextKV(ctx, xlog.DEBUG, "tool", t.name, "err", err.Error())
		return "", errors.WithStack(ErrFailedUnmarshalInput)
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return marshal(out)
}

// RunMCP executes the tool for MCP server
func (t *Func[I, O]) RunMCP(ctx context.Context, req *I) (*mcp.ToolResponse, error) {
	out, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	js, err := marshal(out)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(js)), nil
}

// RegisterMCP registers the tool with MCP server
func (t *Func[I, O]) RegisterMCP(registrator McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

func marshal(v any) (string, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(js), nil
}
