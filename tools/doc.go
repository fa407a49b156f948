// Package tools defines the typed tools exposed by the MCP server, including input validation, parameter schema, and MCP registration.
package tools
