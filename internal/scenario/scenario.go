// Package scenario names the conformance scenarios and runs them against a
// launched application, producing one Result per run.
package scenario

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/a11y-conform/internal/conform"
	"github.com/mj1618/a11y-conform/internal/platform"
)

// Args are the inputs a scenario may need.
type Args struct {
	Structure string `yaml:"structure,omitempty" json:"structure,omitempty"` // expected menu markup
	Sample    Sample `yaml:"sample,omitempty"    json:"sample,omitempty"`
	Control   string `yaml:"control,omitempty"   json:"control,omitempty"` // automation id of the control under test
	Limited   string `yaml:"limited,omitempty"   json:"limited,omitempty"` // automation id of a control with a maximum length
	Numeric   string `yaml:"numeric,omitempty"   json:"numeric,omitempty"` // automation id of a numeric-only control
}

// Scenario is one labeled verification routine.
type Scenario struct {
	Name        string
	Description string
	// Inputs lists the Args fields the scenario reads: "control", "sample",
	// "structure", "limited" or "numeric".
	Inputs []string
	Run    func(sc *conform.Context, app platform.Application, args Args) error
}

// Registry maps scenario names to scenarios.
type Registry struct {
	scenarios map[string]*Scenario
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]*Scenario)}
}

// Register adds s, replacing any scenario with the same name.
func (r *Registry) Register(s *Scenario) {
	r.scenarios[s.Name] = s
}

// Lookup returns the scenario called name.
func (r *Registry) Lookup(name string) (*Scenario, bool) {
	s, ok := r.scenarios[name]
	return s, ok
}

// List returns every scenario sorted by name.
func (r *Registry) List() []*Scenario {
	out := make([]*Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default holds the built-in scenarios.
var Default = NewRegistry()

// Result is the outcome of one scenario run.
type Result struct {
	ID            string        `yaml:"id"                      json:"id"`
	Scenario      string        `yaml:"scenario"                json:"scenario"`
	Control       string        `yaml:"control,omitempty"       json:"control,omitempty"`
	Sample        string        `yaml:"sample,omitempty"        json:"sample,omitempty"`
	Pass          bool          `yaml:"pass"                    json:"pass"`
	Error         string        `yaml:"error,omitempty"         json:"error,omitempty"`
	Discrepancies []string      `yaml:"discrepancies,omitempty" json:"discrepancies,omitempty"`
	Steps         int           `yaml:"steps"                   json:"steps"`
	Comments      []string      `yaml:"comments,omitempty"      json:"comments,omitempty"`
	StartedAt     time.Time     `yaml:"started_at"              json:"started_at"`
	Duration      time.Duration `yaml:"duration"                json:"duration"`
}

// Run runs a scenario from the default registry.
func Run(app platform.Application, name string, args Args, logger *slog.Logger) Result {
	return Default.Run(app, name, args, logger)
}

// Run runs the scenario called name against app. Failures of any kind are
// reported in the Result rather than returned.
func (r *Registry) Run(app platform.Application, name string, args Args, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	res := Result{
		ID:        newRunID(),
		Scenario:  name,
		Control:   args.Control,
		Sample:    string(args.Sample),
		StartedAt: time.Now().UTC(),
	}
	logger = logger.With("scenario", name, "run", res.ID)

	s, ok := r.Lookup(name)
	if !ok {
		res.Error = fmt.Sprintf("unknown scenario %q", name)
		logger.Error("scenario failed", "error", res.Error)
		return res
	}

	sc := conform.NewContext(logger)
	err := s.Run(sc, app, args)
	if err == nil {
		err = sc.Err()
	}

	res.Duration = time.Since(res.StartedAt)
	res.Steps = sc.Steps()
	res.Comments = sc.Comments()
	res.Discrepancies = sc.Discrepancies()
	res.Pass = err == nil
	if err != nil {
		res.Error = err.Error()
		logger.Error("scenario failed", "error", err, "steps", res.Steps)
	} else {
		logger.Info("scenario passed", "steps", res.Steps, "duration", res.Duration)
	}
	return res
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
