package memory

import (
	"errors"
	"strings"
)

// Mode selects how a write mutates the entry journal.
type Mode int

const (
	// ModeAppend adds a new entry after the existing ones.
	ModeAppend Mode = iota
	// ModeReplace drops existing entries in favor of the new one.
	ModeReplace
	// ModeClear empties the journal.
	ModeClear
)

// ParseMode maps a mode string to a Mode; unrecognized input appends.
func ParseMode(mode string) Mode {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "replace":
		return ModeReplace
	case "clear":
		return ModeClear
	}
	return ModeAppend
}

// ErrWritesDisabled rejects write operations under a read-only policy.
var ErrWritesDisabled = errors.New("read-only mode is enabled, writes are disabled")

// Policy combines the global read-only flag with the memory write
// override; writes are rejected only when read-only is set and the
// override is not.
type Policy struct {
	ReadOnly     bool
	WriteEnabled bool
}

// WritesAllowed reports whether write operations may proceed.
func (p Policy) WritesAllowed() bool {
	return !p.ReadOnly || p.WriteEnabled
}

// Service exposes the get/write operations over a namespace store.
type Service struct {
	store  *Store
	policy Policy
}

// NewService creates a memory service backed by store under policy.
func NewService(store *Store, policy Policy) *Service {
	return &Service{store: store, policy: policy}
}

// Get returns the namespace document. A non-nil limit keeps only the
// most recent limit entries, clamped to non-negative, order preserved.
func (s *Service) Get(namespace string, limit *int) *Document {
	document := s.store.Load(namespace)
	if limit == nil {
		return document
	}
	keep := *limit
	if keep < 0 {
		keep = 0
	}
	if keep < len(document.Entries) {
		document.Entries = document.Entries[len(document.Entries)-keep:]
	}
	return document
}

// Write mutates the namespace journal per mode, persists it and returns
// the persisted document. Under a read-only policy without the write
// override it returns ErrWritesDisabled and leaves the journal
// untouched.
func (s *Service) Write(namespace string, data map[string]interface{}, mode Mode) (*Document, error) {
	if !s.policy.WritesAllowed() {
		return nil, ErrWritesDisabled
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return s.store.Update(namespace, func(document *Document) {
		entry := Entry{Timestamp: s.store.timestamp(), Data: data}
		switch mode {
		case ModeClear:
			document.Entries = []Entry{}
		case ModeReplace:
			document.Entries = []Entry{entry}
		default:
			document.Entries = append(document.Entries, entry)
		}
	})
}
