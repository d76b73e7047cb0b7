package chance

import (
	"fmt"
	"strings"

	"github.com/hay-kot/chance/internal/core/config"
	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/chance/pkg/randgen"
	"github.com/rs/zerolog"
)

// Rule sources reported by RuleInfo.
const (
	SourceDefault = "default"
	SourceConfig  = "config"
)

// RuleInfo describes one entry of the active rule table.
type RuleInfo struct {
	Char   rune
	Kind   string
	Source string
	Detail string
}

var defaultRuleInfo = map[rune]RuleInfo{
	'd': {Char: 'd', Kind: config.KindChars, Source: SourceDefault, Detail: randgen.Digits},
	'a': {Char: 'a', Kind: config.KindChars, Source: SourceDefault, Detail: randgen.LowerLetters},
	'A': {Char: 'A', Kind: config.KindChars, Source: SourceDefault, Detail: randgen.UpperLetters},
}

// buildRules layers the config rules over the defaults, or replaces them when
// the config asks for it. src feeds every config rule.
func buildRules(cfg *config.Config, src randgen.Source, log zerolog.Logger) (randfmt.Rules, map[rune]RuleInfo) {
	rules := randfmt.Rules{}
	info := map[rune]RuleInfo{}

	if !cfg.ReplaceDefaultRules {
		rules = randfmt.DefaultRules()
		for c, ri := range defaultRuleInfo {
			info[c] = ri
		}
	}

	for _, key := range cfg.RuleChars() {
		rule := cfg.Rules[key]
		c := rune(key[0])

		gen, detail := ruleGenerator(rule, src, log.With().Str("rule", key).Logger())
		if gen == nil {
			log.Warn().Str("rule", key).Msg("skipping rule with no generator")
			continue
		}

		if _, ok := info[c]; ok {
			log.Debug().Str("rule", key).Msg("config rule overrides default")
		}

		rules[c] = gen
		info[c] = RuleInfo{Char: c, Kind: rule.Kind(), Source: SourceConfig, Detail: detail}
		log.Debug().Stringer("rule", info[c]).Msg("registered rule")
	}

	return rules, info
}

func ruleGenerator(rule config.Rule, src randgen.Source, log zerolog.Logger) (randfmt.Generator, string) {
	switch rule.Kind() {
	case config.KindChars:
		return pickGenerator(strings.Split(rule.Chars, ""), src, log), rule.Chars
	case config.KindWords:
		return pickGenerator(rule.Words, src, log), strings.Join(rule.Words, ", ")
	case config.KindCycle:
		cycler := randgen.NewCycler(rule.Cycle, src)
		gen := func(int) string {
			v, err := cycler.Next()
			if err != nil {
				log.Error().Err(err).Msg("cycle rule")
				return ""
			}
			return v
		}
		return gen, strings.Join(rule.Cycle, ", ")
	default:
		return nil, ""
	}
}

func pickGenerator(items []string, src randgen.Source, log zerolog.Logger) randfmt.Generator {
	items = append([]string(nil), items...)
	return func(int) string {
		v, err := randgen.PickWith(src, items)
		if err != nil {
			log.Error().Err(err).Msg("pick rule")
			return ""
		}
		return v
	}
}

func (ri RuleInfo) String() string {
	return fmt.Sprintf("%%%c %s (%s): %s", ri.Char, ri.Kind, ri.Source, ri.Detail)
}
