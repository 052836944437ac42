// Package tool registers the server's MCP tools on a protocol
// implementer: the persistent memory journal operations and the thin
// fitness account lookups.
package tool

import (
	"context"
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/viant/fitness-mcp/memory"
)

// MemoryGetInput selects which entries to read back.
type MemoryGetInput struct {
	Namespace string `json:"namespace,omitempty" description:"logical namespace separating memories"`
	Limit     *int   `json:"limit,omitempty" description:"optional limit for most recent entries"`
}

// MemoryWriteInput carries one journal mutation.
type MemoryWriteInput struct {
	Namespace string                 `json:"namespace,omitempty" description:"logical namespace separating memories"`
	Data      map[string]interface{} `json:"data,omitempty" description:"entry payload to append or replace with"`
	Mode      string                 `json:"mode,omitempty" description:"append | replace | clear"`
}

// RegisterMemory registers the persistent memory tools backed by service.
func RegisterMemory(implementer *serverproto.DefaultImplementer, service *memory.Service) error {
	if err := serverproto.RegisterTool[*MemoryGetInput](implementer, "memory_get",
		"Get persisted context memory entries", memoryGet(service)); err != nil {
		return err
	}
	return serverproto.RegisterTool[*MemoryWriteInput](implementer, "memory_write",
		"Persist context memory entries", memoryWrite(service))
}

func memoryGet(service *memory.Service) func(ctx context.Context, input *MemoryGetInput) (*schema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, input *MemoryGetInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return documentResult(service.Get(input.Namespace, input.Limit))
	}
}

func memoryWrite(service *memory.Service) func(ctx context.Context, input *MemoryWriteInput) (*schema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, input *MemoryWriteInput) (*schema.CallToolResult, *jsonrpc.Error) {
		document, err := service.Write(input.Namespace, input.Data, memory.ParseMode(input.Mode))
		if err != nil {
			return errorResult("Error: " + err.Error()), nil
		}
		return documentResult(document)
	}
}

func documentResult(document *memory.Document) (*schema.CallToolResult, *jsonrpc.Error) {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return textResult(string(data)), nil
}

func textResult(text string) *schema.CallToolResult {
	return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Text: text}}}
}

func errorResult(text string) *schema.CallToolResult {
	isError := true
	ret := textResult(text)
	ret.IsError = &isError
	return ret
}
