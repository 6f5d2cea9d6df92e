// Package generation persists per-generation metadata: which editors were
// generated, when, and the pre-substitution template snapshot of every
// written file. Sync uses the snapshots to reconcile edited documents.
// The variable engine itself stays stateless; this file is the only
// cross-invocation state.
package generation

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// Record is the on-disk generation metadata.
type Record struct {
	// ID identifies one generation run.
	ID string `yaml:"id"`
	// GeneratedAt is when the run happened.
	GeneratedAt time.Time `yaml:"generated_at"`
	// Editors lists the adapters that were generated.
	Editors []string `yaml:"editors"`
	// Files maps project-relative paths to their template snapshots.
	Files map[string]FileRecord `yaml:"files"`
}

// FileRecord is the snapshot of one generated file.
type FileRecord struct {
	Editor   string `yaml:"editor"`
	Template string `yaml:"template"`
}

// NewRecord creates a record for a fresh generation run.
func NewRecord() *Record {
	return &Record{
		ID:          ulid.Make().String(),
		GeneratedAt: time.Now().UTC(),
		Files:       make(map[string]FileRecord),
	}
}

// Path returns the metadata file location for a project directory.
func Path(dir string) string {
	return filepath.Join(metaDir(dir), "generation.yaml")
}

func metaDir(dir string) string {
	return filepath.Join(dir, ".uniprompt")
}

// Load reads the metadata for a project directory. A missing file returns
// (nil, nil): sync degrades to parsing editor files without
// reconciliation.
func Load(dir string) (*Record, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Path(dir), err)
	}
	return &rec, nil
}

// Save writes the metadata for a project directory. Writers are
// serialized with a file lock so a watch-mode regeneration cannot race
// a manual run.
func (r *Record) Save(dir string) error {
	lock, err := acquire(dir)
	if err != nil {
		return err
	}
	defer lock.release()

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(dir), data, 0644)
}
