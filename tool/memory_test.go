package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/fitness-mcp/memory"
)

func newMemoryService(t *testing.T, policy memory.Policy) *memory.Service {
	return memory.NewService(memory.NewStore(t.TempDir()), policy)
}

func TestMemoryTools_WriteThenGet(t *testing.T) {
	service := newMemoryService(t, memory.Policy{})
	write := memoryWrite(service)
	get := memoryGet(service)

	result, jErr := write(context.Background(), &MemoryWriteInput{
		Namespace: "training",
		Data:      map[string]interface{}{"note": "tempo run"},
	})
	assert.Nil(t, jErr)
	assert.Nil(t, result.IsError)

	result, jErr = get(context.Background(), &MemoryGetInput{Namespace: "training"})
	assert.Nil(t, jErr)
	assert.Equal(t, 1, len(result.Content))

	document := &memory.Document{}
	assert.Nil(t, json.Unmarshal([]byte(result.Content[0].Text), document))
	assert.Equal(t, 1, len(document.Entries))
	assert.Equal(t, "tempo run", document.Entries[0].Data["note"])
}

func TestMemoryTools_GetLimit(t *testing.T) {
	service := newMemoryService(t, memory.Policy{})
	write := memoryWrite(service)
	get := memoryGet(service)

	for _, note := range []string{"one", "two", "three"} {
		_, jErr := write(context.Background(), &MemoryWriteInput{Data: map[string]interface{}{"note": note}})
		assert.Nil(t, jErr)
	}

	limit := 1
	result, jErr := get(context.Background(), &MemoryGetInput{Limit: &limit})
	assert.Nil(t, jErr)
	document := &memory.Document{}
	assert.Nil(t, json.Unmarshal([]byte(result.Content[0].Text), document))
	assert.Equal(t, 1, len(document.Entries))
	assert.Equal(t, "three", document.Entries[0].Data["note"])
}

func TestMemoryTools_ClearMode(t *testing.T) {
	service := newMemoryService(t, memory.Policy{})
	write := memoryWrite(service)

	_, jErr := write(context.Background(), &MemoryWriteInput{Data: map[string]interface{}{"note": "keep"}})
	assert.Nil(t, jErr)
	result, jErr := write(context.Background(), &MemoryWriteInput{Mode: "clear"})
	assert.Nil(t, jErr)

	document := &memory.Document{}
	assert.Nil(t, json.Unmarshal([]byte(result.Content[0].Text), document))
	assert.Equal(t, 0, len(document.Entries))
}

func TestMemoryTools_WriteDisabled(t *testing.T) {
	service := newMemoryService(t, memory.Policy{ReadOnly: true})
	write := memoryWrite(service)

	result, jErr := write(context.Background(), &MemoryWriteInput{Data: map[string]interface{}{"note": "blocked"}})
	assert.Nil(t, jErr)
	assert.NotNil(t, result.IsError)
	assert.True(t, *result.IsError)
	assert.Contains(t, result.Content[0].Text, "Error:")
	assert.Contains(t, result.Content[0].Text, "read-only")
}
