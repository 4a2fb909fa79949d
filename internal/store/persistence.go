package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// SchemaVersion is the current preferences file schema version.
const SchemaVersion = 1

// fileDocument is the JSON layout of the preferences file.
type fileDocument struct {
	SchemaVersion int               `json:"schema_version"`
	Values        map[string]string `json:"values"`
	UpdatedAt     int64             `json:"updated_at,omitempty"` // Unix timestamp of the last write
}

// FileKV is a KV persisted as a single JSON document. Every Set rewrites
// the file atomically via a temp file.
type FileKV struct {
	mu        sync.RWMutex
	path      string
	values    map[string]string
	updatedAt time.Time

	subscribers []chan ChangeEvent
	closed      bool
}

// OpenFileKV loads the store at path. A missing or corrupted file reads as
// empty; the file and its directory are created on the first Set.
func OpenFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, fmt.Errorf("preferences path is empty")
	}

	f := &FileKV{path: path}
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	f.values = doc.Values
	if doc.UpdatedAt > 0 {
		f.updatedAt = time.Unix(doc.UpdatedAt, 0)
	}

	return f, nil
}

// readDocument reads path, treating a missing or unparseable file as empty.
func readDocument(path string) (fileDocument, error) {
	empty := fileDocument{SchemaVersion: SchemaVersion, Values: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return empty, fmt.Errorf("read %s: %w", path, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return empty, nil
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = SchemaVersion
	}

	return doc, nil
}

// Path returns the backing file path.
func (f *FileKV) Path() string {
	return f.path
}

// Get returns the stored value.
func (f *FileKV) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Set stores value under key and writes the file.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStoreClosed
	}

	next := maps.Clone(f.values)
	if next == nil {
		next = make(map[string]string, 1)
	}
	next[key] = value
	now := time.Now()

	if err := f.write(next, now); err != nil {
		return err
	}

	f.values = next
	f.updatedAt = now
	f.notifyChange(ChangeEvent{Source: ChangeSourceLocal, Keys: []string{key}})

	return nil
}

// write persists values atomically. Caller holds f.mu.
func (f *FileKV) write(values map[string]string, now time.Time) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(fileDocument{
		SchemaVersion: SchemaVersion,
		Values:        values,
		UpdatedAt:     now.Unix(),
	}, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}

	return os.Rename(tmpPath, f.path)
}

// Reload re-reads the file and notifies subscribers when any value changed.
// It reports whether anything changed. The file is read under the write
// lock so a concurrent Set can never be rolled back by a stale read.
func (f *FileKV) Reload() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false, ErrStoreClosed
	}

	doc, err := readDocument(f.path)
	if err != nil {
		return false, err
	}

	changed := diffKeys(f.values, doc.Values)
	if len(changed) == 0 {
		return false, nil
	}

	f.values = doc.Values
	if doc.UpdatedAt > 0 {
		f.updatedAt = time.Unix(doc.UpdatedAt, 0)
	}
	f.notifyChange(ChangeEvent{Source: ChangeSourceExternal, Keys: changed})

	return true, nil
}

// diffKeys returns the sorted keys whose values differ between a and b.
func diffKeys(a, b map[string]string) []string {
	var keys []string
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// UpdatedAt returns the time of the last write, zero if never written.
func (f *FileKV) UpdatedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.updatedAt
}

// Subscribe returns a channel that receives change events. Events are
// dropped when the channel is full.
func (f *FileKV) Subscribe() <-chan ChangeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if f.closed {
		close(ch)
		return ch
	}
	f.subscribers = append(f.subscribers, ch)
	return ch
}

// notifyChange fans out an event. Caller holds f.mu.
func (f *FileKV) notifyChange(event ChangeEvent) {
	for _, ch := range f.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Close closes all subscriber channels. Further writes fail.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	for _, ch := range f.subscribers {
		close(ch)
	}
	f.subscribers = nil

	return nil
}
