// Package chance wires the generator library to the configuration used by
// the chance CLI.
package chance

import (
	"context"
	"fmt"
	"slices"

	"github.com/hay-kot/chance/internal/core/config"
	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/chance/pkg/randgen"
	"github.com/rs/zerolog"
)

// Draw is one value produced by Service.Cycle.
type Draw struct {
	Value string
	Epoch int // 1-based permutation number the value belongs to
}

// RenderOptions configures Service.Render.
type RenderOptions struct {
	Dir      string   // base directory patterns are resolved against
	Patterns []string // doublestar glob patterns
	OutDir   string   // write results here; empty returns them only
}

// Service orchestrates chance operations.
type Service struct {
	config *config.Config
	log    zerolog.Logger
	src    randgen.Source
	rules  randfmt.Rules
	info   map[rune]RuleInfo
}

// New creates a new Service. A nil src uses randgen.Crypto.
func New(cfg *config.Config, src randgen.Source, log zerolog.Logger) *Service {
	if src == nil {
		src = randgen.Crypto
	}

	rules, info := buildRules(cfg, src, log.With().Str("component", "rules").Logger())

	return &Service{
		config: cfg,
		log:    log,
		src:    src,
		rules:  rules,
		info:   info,
	}
}

// Rules returns a copy of the active rule table.
func (s *Service) Rules() randfmt.Rules {
	return s.rules.Clone()
}

// RuleInfo describes the active rules sorted by character.
func (s *Service) RuleInfo() []RuleInfo {
	out := make([]RuleInfo, 0, len(s.info))
	for _, c := range s.rules.Chars() {
		out = append(out, s.info[c])
	}
	return out
}

// Format expands template n times. When plain is set only the built-in rules
// are used, ignoring the config.
func (s *Service) Format(template string, n int, plain bool) ([]string, error) {
	t, err := randfmt.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	rules := s.rules
	if plain {
		rules = randfmt.DefaultRules()
	}

	s.log.Debug().Str("template", template).Int("count", n).Bool("plain", plain).Msg("formatting")

	out := make([]string, 0, max(n, 0))
	for range n {
		v, err := t.Execute(rules)
		if err != nil {
			return nil, fmt.Errorf("expand template: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// TemplateNames returns the names of the templates defined in the config.
func (s *Service) TemplateNames() []string {
	names := make([]string, 0, len(s.config.Templates))
	for name := range s.config.Templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Template returns the named config template.
func (s *Service) Template(name string) (string, error) {
	t, ok := s.config.Templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	return t, nil
}

// Pick draws n independent random items.
func (s *Service) Pick(items []string, n int) ([]string, error) {
	out := make([]string, 0, max(n, 0))
	for range n {
		v, err := randgen.PickWith(s.src, items)
		if err != nil {
			return nil, fmt.Errorf("pick: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Cycle draws n items without repeats until every item has been used, then
// starts a new epoch.
func (s *Service) Cycle(items []string, n int) ([]Draw, error) {
	var (
		state randgen.CycleState[string]
		epoch int
		out   = make([]Draw, 0, max(n, 0))
	)
	for range n {
		if state.Len() == 0 {
			epoch++
		}

		var (
			v   string
			err error
		)
		v, state, err = randgen.CycleWith(s.src, items, state)
		if err != nil {
			return nil, fmt.Errorf("cycle: %w", err)
		}
		out = append(out, Draw{Value: v, Epoch: epoch})
	}
	return out, nil
}

// Render renders template files with the config lists as data and the active
// rules behind fake and repeat.
func (s *Service) Render(ctx context.Context, opts RenderOptions) ([]RenderedFile, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	r := NewRenderer(s.log.With().Str("component", "renderer").Logger(), s.rules, s.src, s.renderData())

	files, err := r.Render(ctx, dir, opts.OutDir, opts.Patterns)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("files", len(files)).Str("dir", dir).Msg("rendered templates")
	return files, nil
}

func (s *Service) renderData() map[string]any {
	data := make(map[string]any, len(s.config.Lists))
	for name, list := range s.config.Lists {
		data[name] = list
	}
	return data
}

// Items resolves command line items. A single item naming a config list with
// an "@" prefix, such as "@colors", expands to that list.
func (s *Service) Items(items []string) ([]string, error) {
	if len(items) == 1 && len(items[0]) > 1 && items[0][0] == '@' {
		name := items[0][1:]
		list, ok := s.config.Lists[name]
		if !ok {
			return nil, fmt.Errorf("list %q not found", name)
		}
		return list, nil
	}

	if len(items) == 0 {
		return nil, randgen.ErrEmptySource
	}
	return items, nil
}
