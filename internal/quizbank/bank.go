// Package quizbank holds the static quiz definitions for the four training
// modules. Banks are embedded at build time, parsed once at startup, and never
// mutated afterwards; they are the ground truth for server-side scoring.
package quizbank

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed banks/*.yaml
var banksFS embed.FS

// ModuleCount is the fixed number of training modules.
const ModuleCount = 4

// PassThreshold is the score ratio required to pass a module.
const PassThreshold = 0.70

type Question struct {
	ID          int      `yaml:"id" json:"id"`
	Text        string   `yaml:"text" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Correct     int      `yaml:"correct" json:"-"`
	Explanation string   `yaml:"explanation" json:"-"`
}

// CorrectOption returns the text of the correct option.
func (q *Question) CorrectOption() string {
	return q.Options[q.Correct]
}

type Module struct {
	ID        int        `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Question looks up a question by id within the module.
func (m *Module) Question(id int) (*Question, bool) {
	for i := range m.Questions {
		if m.Questions[i].ID == id {
			return &m.Questions[i], true
		}
	}
	return nil, false
}

// Bank is the loaded, read-only set of module question banks.
type Bank struct {
	modules map[int]*Module
}

// Load parses and validates every embedded bank file.
func Load() (*Bank, error) {
	entries, err := banksFS.ReadDir("banks")
	if err != nil {
		return nil, err
	}

	modules := make(map[int]*Module, len(entries))
	for _, e := range entries {
		data, err := banksFS.ReadFile("banks/" + e.Name())
		if err != nil {
			return nil, err
		}

		var m Module
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if err := validate(&m); err != nil {
			return nil, fmt.Errorf("invalid bank %s: %w", e.Name(), err)
		}
		if _, dup := modules[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module id %d in %s", m.ID, e.Name())
		}
		modules[m.ID] = &m
	}

	if len(modules) != ModuleCount {
		return nil, fmt.Errorf("expected %d module banks, found %d", ModuleCount, len(modules))
	}
	for id := 1; id <= ModuleCount; id++ {
		if _, ok := modules[id]; !ok {
			return nil, fmt.Errorf("missing bank for module %d", id)
		}
	}

	return &Bank{modules: modules}, nil
}

func validate(m *Module) error {
	if m.ID < 1 || m.ID > ModuleCount {
		return fmt.Errorf("module id %d out of range", m.ID)
	}
	if m.Title == "" {
		return fmt.Errorf("module %d has no title", m.ID)
	}
	if len(m.Questions) == 0 {
		return fmt.Errorf("module %d has no questions", m.ID)
	}
	for i, q := range m.Questions {
		// Ids are 1-based and sequential; submission completeness checks
		// rely on the id set being exactly 1..len.
		if q.ID != i+1 {
			return fmt.Errorf("module %d: question ids must be sequential, got %d at position %d", m.ID, q.ID, i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("module %d question %d: expected 4 options, got %d", m.ID, q.ID, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("module %d question %d: correct index %d out of range", m.ID, q.ID, q.Correct)
		}
		if q.Text == "" {
			return fmt.Errorf("module %d question %d: empty text", m.ID, q.ID)
		}
	}
	return nil
}

// Module returns the bank for a module id.
func (b *Bank) Module(id int) (*Module, bool) {
	m, ok := b.modules[id]
	return m, ok
}

// Modules returns all banks ordered by module id.
func (b *Bank) Modules() []*Module {
	out := make([]*Module, 0, len(b.modules))
	for _, m := range b.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
