package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the whole task collection in a single JSON file.
type Store struct {
	path string
}

// NewStore returns a Store for the task file at path.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ValidationError{Field: "path", Err: errors.New("task file path is required")}
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the location of the task file.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the task file.
// A missing or empty file yields an empty collection.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewFile(), nil
		}
		return nil, &PersistenceError{Op: "read", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewFile(), nil
	}

	f, problems := decodeFile(data)
	if len(problems) > 0 {
		return nil, &CorruptDataError{Path: s.path, Problems: problems}
	}
	return f, nil
}

// Save replaces the task file with f, written with 2-space indentation.
// The write is atomic: on failure the previous contents are left in place.
func (s *Store) Save(f *File) error {
	if f == nil {
		return &ValidationError{Field: "file", Err: errors.New("nil task file")}
	}
	if problems := f.Validate(); len(problems) > 0 {
		return problems[0]
	}

	out := *f
	out.SchemaVersion = SchemaVersion
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	out.reconcileNextID()

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// CheckResult summarizes a task file without modifying it.
type CheckResult struct {
	Path   string
	Exists bool
	Tasks  int
	NextID int
	Counts map[Status]int
}

// Check loads the task file and reports what it holds.
// Errors are the same as Load.
func (s *Store) Check() (*CheckResult, error) {
	_, statErr := os.Stat(s.path)
	f, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		Path:   s.path,
		Exists: statErr == nil,
		Tasks:  len(f.Tasks),
		NextID: f.NextID,
		Counts: f.CountByStatus(),
	}, nil
}

// decodeFile parses raw task file bytes, validating them against the
// embedded schema and the collection invariants.
func decodeFile(data []byte) (*File, []error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, []error{fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, []error{errors.New("invalid JSON: trailing content after document")}
	}

	if problems := validateDocument(doc); len(problems) > 0 {
		return nil, problems
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, []error{fmt.Errorf("decode task file: %w", err)}
	}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}
	if problems := f.Validate(); len(problems) > 0 {
		return nil, problems
	}
	f.reconcileNextID()
	return &f, nil
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it, and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true

	// The rename already happened; a directory that cannot be synced
	// (some filesystems, Windows) does not undo it.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
