package memory

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/mcp-protocol/syncmap"
)

// DefaultNamespace receives entries when no usable namespace is supplied.
const DefaultNamespace = "default"

var invalidNamespaceChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// Entry is a single journal record.
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Document is the whole-file journal for one namespace. Entries keep
// insertion order; UpdatedAt tracks the most recent mutation.
type Document struct {
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []Entry   `json:"entries"`
}

// Store persists one document per namespace as
// <root>/<sanitized-namespace>.json. Read-modify-write cycles are
// serialized per namespace; concurrent writers to distinct namespaces do
// not contend.
type Store struct {
	root      string
	locks     *syncmap.Map[string, *sync.Mutex]
	locksInit sync.Mutex
	now       func() time.Time
}

// NewStore creates a store rooted at the supplied directory.
func NewStore(root string) *Store {
	return &Store{
		root:  root,
		locks: syncmap.NewMap[string, *sync.Mutex](),
		now:   time.Now,
	}
}

// SafeNamespace replaces character runs outside [A-Za-z0-9_.-] with a
// single underscore; a name without any valid character falls back to
// the default namespace. This keeps every namespace inside the root
// directory.
func SafeNamespace(namespace string) string {
	cleaned := invalidNamespaceChars.ReplaceAllString(strings.TrimSpace(namespace), "_")
	if strings.Trim(cleaned, "_") == "" {
		return DefaultNamespace
	}
	return cleaned
}

func (s *Store) path(namespace string) string {
	return filepath.Join(s.root, SafeNamespace(namespace)+".json")
}

// Load returns the namespace document. A missing or corrupt file yields
// a fresh empty document; a load never fails.
func (s *Store) Load(namespace string) *Document {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		return s.emptyDocument()
	}
	document := &Document{}
	if err := json.Unmarshal(data, document); err != nil {
		log.Printf("memory: discarding corrupt namespace %q: %v", SafeNamespace(namespace), err)
		return s.emptyDocument()
	}
	if document.Entries == nil {
		document.Entries = []Entry{}
	}
	return document
}

// Save persists the document with a temp-file write followed by an
// atomic rename, so a reader never observes a partial document.
func (s *Store) Save(namespace string, document *Document) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create memory root %v: %w", s.root, err)
	}
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal namespace %v: %w", SafeNamespace(namespace), err)
	}
	data = append(data, '\n')
	target := s.path(namespace)
	temp := fmt.Sprintf("%s.tmp-%d-%s", target, os.Getpid(), uuid.New().String())
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %v: %w", temp, err)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("failed to replace %v: %w", target, err)
	}
	return nil
}

// Update runs mutate inside the namespace's load-modify-save cycle,
// stamps UpdatedAt and persists the result.
func (s *Store) Update(namespace string, mutate func(document *Document)) (*Document, error) {
	lock := s.namespaceLock(SafeNamespace(namespace))
	lock.Lock()
	defer lock.Unlock()
	document := s.Load(namespace)
	mutate(document)
	document.UpdatedAt = s.timestamp()
	if err := s.Save(namespace, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *Store) namespaceLock(key string) *sync.Mutex {
	if lock, ok := s.locks.Get(key); ok {
		return lock
	}
	s.locksInit.Lock()
	defer s.locksInit.Unlock()
	if lock, ok := s.locks.Get(key); ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks.Put(key, lock)
	return lock
}

func (s *Store) emptyDocument() *Document {
	return &Document{UpdatedAt: s.timestamp(), Entries: []Entry{}}
}

// timestamp truncates to whole seconds so documents serialize with the
// compact RFC3339 form.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}
