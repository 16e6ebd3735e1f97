// Package store keeps per-job files (uploads, merged document, generated
// tables) under a single data root.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

type FS struct{ Root string }

func New(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FS{Root: root}, nil
}

func (s *FS) JobDir(id string) string { return filepath.Join(s.Root, id) }

func (s *FS) MkJob(id string) (string, error) {
	j := s.JobDir(id)
	for _, dir := range []string{"uploads", "tables"} {
		if err := os.MkdirAll(filepath.Join(j, dir), 0o755); err != nil {
			return "", err
		}
	}
	return j, nil
}

// SaveUpload stores the raw uploaded file under the job's uploads directory.
func (s *FS) SaveUpload(id, name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.JobDir(id), "uploads", safeName(name)), data, 0o644)
}

// SaveDocument persists the merged JSON document.
func (s *FS) SaveDocument(id, doc string) error {
	return os.WriteFile(filepath.Join(s.JobDir(id), "document.json"), []byte(doc), 0o644)
}

func (s *FS) ReadDocument(id string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.JobDir(id), "document.json"))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SaveTable writes one generated table as <name>.csv under the job.
func (s *FS) SaveTable(id, name string, t types.Table) error {
	return os.WriteFile(s.tablePath(id, name), []byte(t.CSV()), 0o644)
}

func (s *FS) ReadTable(id, name string) ([]byte, error) {
	return os.ReadFile(s.tablePath(id, name))
}

func (s *FS) tablePath(id, name string) string {
	return filepath.Join(s.JobDir(id), "tables", safeName(name)+".csv")
}

// safeName keeps table/file names inside the job directory.
func safeName(name string) string {
	name = strings.TrimSuffix(name, ".csv")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "table"
	}
	return name
}
