package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/utils"
	mcp "github.com/metoro-io/mcp-golang"
)

// ErrFailedUnmarshalInput is returned when the tool input does not match the schema
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")

// ErrInvalidInput is returned when the tool input fails validation
var ErrInvalidInput = errors.New("invalid input")

type McpServerRegistrator interface {
	RegisterTool(name string, description string, handler any) error
}

// ITool is a tool for the agent to interact with the Masa API.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool.
	Description() string
	// Parameters returns the parameters definition of the tool.
	Parameters() any

	// Call executes the tool with the given JSON input and returns the JSON result.
	// If the tool fails to parse the input, it returns ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// IMCPTool is an interface that extends ITool to include functionality for
// registering the tool with an MCP server.
type IMCPTool interface {
	ITool
	RegisterMCP(registrator McpServerRegistrator) error
}

type MCPTool[I any] interface {
	IMCPTool
	RunMCP(context.Context, *I) (*mcp.ToolResponse, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns JSON with names and descriptions of the tools
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return utils.ToJSONIndent(d)
}

// RegisterMCP registers the tools with the MCP server
func RegisterMCP(registrator McpServerRegistrator, list ...IMCPTool) error {
	for _, tool := range list {
		if err := tool.RegisterMCP(registrator); err != nil {
			return errors.WithMessagef(err, "unable to register tool %q", tool.Name())
		}
	}
	return nil
}

// Find returns the tool by name
func Find(name string, list ...IMCPTool) (IMCPTool, bool) {
	for _, tool := range list {
		if tool.Name() == name {
			return tool, true
		}
	}
	return nil, false
}
