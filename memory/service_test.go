package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeAppend, ParseMode("append"))
	assert.Equal(t, ModeAppend, ParseMode(""))
	assert.Equal(t, ModeAppend, ParseMode("bogus"))
	assert.Equal(t, ModeReplace, ParseMode("Replace"))
	assert.Equal(t, ModeClear, ParseMode(" clear "))
}

func TestPolicy_WritesAllowed(t *testing.T) {
	assert.True(t, Policy{ReadOnly: false, WriteEnabled: false}.WritesAllowed())
	assert.True(t, Policy{ReadOnly: false, WriteEnabled: true}.WritesAllowed())
	assert.True(t, Policy{ReadOnly: true, WriteEnabled: true}.WritesAllowed())
	assert.False(t, Policy{ReadOnly: true, WriteEnabled: false}.WritesAllowed())
}

func newTestService(t *testing.T, policy Policy) *Service {
	return NewService(NewStore(t.TempDir()), policy)
}

func TestService_WriteModes(t *testing.T) {
	service := newTestService(t, Policy{})

	document, err := service.Write("plan", map[string]interface{}{"a": 1}, ModeAppend)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(document.Entries))

	document, err = service.Write("plan", map[string]interface{}{"b": 2}, ModeAppend)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(document.Entries))
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, document.Entries[0].Data)
	assert.Equal(t, map[string]interface{}{"b": 2}, document.Entries[1].Data)

	document, err = service.Write("plan", map[string]interface{}{"c": 3}, ModeReplace)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(document.Entries))
	assert.Equal(t, map[string]interface{}{"c": 3}, document.Entries[0].Data)

	document, err = service.Write("plan", nil, ModeClear)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(document.Entries))
}

func TestService_GetLimit(t *testing.T) {
	service := newTestService(t, Policy{})
	for _, note := range []string{"first", "second", "third"} {
		_, err := service.Write("plan", map[string]interface{}{"note": note}, ModeAppend)
		assert.Nil(t, err)
	}

	limit := 1
	document := service.Get("plan", &limit)
	assert.Equal(t, 1, len(document.Entries))
	assert.Equal(t, "third", document.Entries[0].Data["note"])

	limit = 2
	document = service.Get("plan", &limit)
	assert.Equal(t, 2, len(document.Entries))
	assert.Equal(t, "second", document.Entries[0].Data["note"])

	limit = -5
	document = service.Get("plan", &limit)
	assert.Equal(t, 0, len(document.Entries))

	document = service.Get("plan", nil)
	assert.Equal(t, 3, len(document.Entries))
}

func TestService_GetMissingNamespace(t *testing.T) {
	service := newTestService(t, Policy{})
	document := service.Get("never-written", nil)
	assert.Equal(t, []Entry{}, document.Entries)
}

func TestService_WriteDisabled(t *testing.T) {
	store := NewStore(t.TempDir())
	writable := NewService(store, Policy{})
	before, err := writable.Write("plan", map[string]interface{}{"keep": true}, ModeAppend)
	assert.Nil(t, err)

	readOnly := NewService(store, Policy{ReadOnly: true, WriteEnabled: false})
	_, err = readOnly.Write("plan", map[string]interface{}{"drop": true}, ModeAppend)
	assert.Equal(t, ErrWritesDisabled, err)

	// the on-disk document is unchanged
	after := store.Load("plan")
	assert.Equal(t, len(before.Entries), len(after.Entries))
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}
