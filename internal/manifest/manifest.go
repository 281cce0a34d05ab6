// Package manifest loads batch descriptions for the docrank CLI. A manifest
// names the documents, the persona and the job; YAML and JSON are both
// accepted.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docrank/internal/parser"
)

type Manifest struct {
	Documents   []DocumentRef `yaml:"documents" json:"documents"`
	Persona     Persona       `yaml:"persona" json:"persona"`
	JobToBeDone Job           `yaml:"job_to_be_done" json:"job_to_be_done"`
	TopN        int           `yaml:"top_n,omitempty" json:"top_n,omitempty"`

	// Relative document paths resolve against this directory.
	BaseDir string `yaml:"-" json:"-"`
}

type DocumentRef struct {
	Filename string `yaml:"filename" json:"filename"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
}

type Persona struct {
	Role string `yaml:"role" json:"role"`
}

type Job struct {
	Task string `yaml:"task" json:"task"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.BaseDir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates manifest data.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest names a persona, a job and at least one
// document.
func (m *Manifest) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Persona.Role) == "" {
		errs = append(errs, errors.New("persona.role is required"))
	}
	if strings.TrimSpace(m.JobToBeDone.Task) == "" {
		errs = append(errs, errors.New("job_to_be_done.task is required"))
	}
	if len(m.Documents) == 0 {
		errs = append(errs, errors.New("at least one document is required"))
	}
	for i, d := range m.Documents {
		if d.Filename == "" {
			errs = append(errs, fmt.Errorf("documents[%d].filename is required", i))
		}
	}
	if m.TopN < 0 {
		errs = append(errs, fmt.Errorf("top_n must not be negative, got %d", m.TopN))
	}
	return errors.Join(errs...)
}

// Paths returns the document paths, resolved against BaseDir.
func (m *Manifest) Paths() []string {
	paths := make([]string, len(m.Documents))
	for i, d := range m.Documents {
		if filepath.IsAbs(d.Filename) {
			paths[i] = d.Filename
		} else {
			paths[i] = filepath.Join(m.BaseDir, d.Filename)
		}
	}
	return paths
}

// ScanDir lists the supported documents directly inside dir, sorted by
// name so runs over the same directory rank ties identically.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported documents in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}
