package schema_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/effective-security/masamcp/schema"
	"github.com/effective-security/masamcp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Format string

type Page struct {
	URL    string `json:"url" jsonschema:"title=URL,description=URL of the page"`
	Format Format `json:"format,omitempty" jsonschema:"title=Format,description=Output format,enum=html,enum=markdown,enum=text"`
}

type Search struct {
	Query string   `json:"query" jsonschema:"title=Query,description=Query to search for relevant content,example=what is golang"`
	Pages []Page   `json:"pages,omitempty" jsonschema:"title=Pages,description=Pages to scrape"`
	Tags  []string `json:"tags,omitempty"`
}

type fakeSearch struct {
	Query string `json:"query"`
}

func (f *fakeSearch) Fake() any {
	return &fakeSearch{Query: "bitcoin"}
}

func TestSchema(t *testing.T) {
	s, err := schema.New(reflect.TypeOf(Search{}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.Ref, "#/$defs/Search@"), s.Ref)

	exp := `{
	"properties": {
		"query": {
			"type": "string",
			"title": "Query",
			"description": "Query to search for relevant content",
			"examples": ["what is golang"]
		},
		"pages": {
			"items": {
				"properties": {
					"url": {"type": "string", "title": "URL", "description": "URL of the page"},
					"format": {"type": "string", "enum": ["html", "markdown", "text"], "title": "Format", "description": "Output format"}
				},
				"additionalProperties": false,
				"type": "object",
				"required": ["url"]
			},
			"type": "array",
			"title": "Pages",
			"description": "Pages to scrape"
		},
		"tags": {
			"items": {"type": "string"},
			"type": "array"
		}
	},
	"type": "object",
	"required": ["query"]
}`
	assert.JSONEq(t, exp, s.String())

	s2, err := schema.New(reflect.TypeOf(Search{}))
	require.NoError(t, err)
	assert.Same(t, s, s2)
}

func TestSchema_NotStruct(t *testing.T) {
	_, err := schema.New(reflect.TypeOf(""))
	assert.Error(t, err)
}

func TestExample(t *testing.T) {
	v := schema.Example(reflect.TypeOf(fakeSearch{}))
	assert.Equal(t, `{"query":"bitcoin"}`, utils.ToJSON(v))

	p, ok := schema.Example(reflect.TypeOf(&Page{})).(*Page)
	require.True(t, ok)
	assert.NotEmpty(t, p.URL)
}
