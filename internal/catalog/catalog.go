// Package catalog holds the static table of candidate models. The catalog is
// loaded once at startup and read-only afterwards; entry order in the source
// file is the tiebreak order for recommendations.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vedanthq/SLMGen/internal/models"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Entry describes one candidate model.
type Entry struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// HFID is the Hugging Face repository path for the base model, used in
	// generated usage snippets.
	HFID          string                     `yaml:"hf_id" json:"hf_id"`
	SizeClass     string                     `yaml:"size_class" json:"size_class"`
	ContextWindow int                        `yaml:"context_window" json:"context_window"`
	IsGated       bool                       `yaml:"is_gated" json:"is_gated"`
	GoodForTasks  []models.TaskType          `yaml:"good_for_tasks" json:"good_for_tasks"`
	GoodForDeploy []models.DeploymentTarget  `yaml:"good_for_deploy" json:"good_for_deploy"`
	MinExamples   int                        `yaml:"min_examples" json:"min_examples"`
	VRAMGB        float64                    `yaml:"vram_gb" json:"vram_gb"`
	// TrainingTimePer1K is minutes of fine-tuning per thousand examples.
	TrainingTimePer1K int  `yaml:"training_time_per_1k_examples" json:"training_time_per_1k_examples"`
	Multilingual      bool `yaml:"multilingual" json:"multilingual"`
	JSONOutput        bool `yaml:"json_output" json:"json_output"`
}

// SupportsTask reports whether the entry is tagged for the task.
func (e Entry) SupportsTask(task models.TaskType) bool {
	for _, t := range e.GoodForTasks {
		if t == task {
			return true
		}
	}
	return false
}

// SupportsDeploy reports whether the entry is tagged for the target.
func (e Entry) SupportsDeploy(target models.DeploymentTarget) bool {
	for _, d := range e.GoodForDeploy {
		if d == target {
			return true
		}
	}
	return false
}

// Catalog is an ordered, immutable set of entries.
type Catalog struct {
	entries []Entry
}

type catalogFile struct {
	Models []Entry `yaml:"models"`
}

// Load parses and validates a catalog from YAML.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("catalog contains no models")
	}

	seen := make(map[string]bool, len(file.Models))
	for i, e := range file.Models {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, e.ID, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}

	return &Catalog{entries: file.Models}, nil
}

// Default returns the embedded catalog. Panics if the embedded data is
// invalid, which is a build defect.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

func validateEntry(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("missing id")
	}
	if e.Name == "" {
		return fmt.Errorf("missing name")
	}
	if e.HFID == "" {
		return fmt.Errorf("missing hf_id")
	}
	if len(e.GoodForTasks) == 0 {
		return fmt.Errorf("no tasks listed")
	}
	for _, t := range e.GoodForTasks {
		if _, err := models.ParseTaskType(string(t)); err != nil {
			return err
		}
	}
	if len(e.GoodForDeploy) == 0 {
		return fmt.Errorf("no deployment targets listed")
	}
	for _, d := range e.GoodForDeploy {
		if _, err := models.ParseDeploymentTarget(string(d)); err != nil {
			return err
		}
	}
	if e.MinExamples <= 0 {
		return fmt.Errorf("min_examples must be positive")
	}
	if e.VRAMGB <= 0 {
		return fmt.Errorf("vram_gb must be positive")
	}
	return nil
}

// Entries returns the catalog entries in declaration order. The returned
// slice is a copy; the catalog itself never changes.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Find returns the entry with the given id.
func (c *Catalog) Find(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
