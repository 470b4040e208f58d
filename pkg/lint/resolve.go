package lint

import (
	"slices"

	"github.com/yaklabco/vuelint/pkg/config"
)

// ResolvedRule pairs a Rule with the settings it runs under.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// AutoFix is true only when --fix is set and the rule may fix.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry with their settings,
// in registry order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(rule, cfg); rr.Enabled {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// resolveRule layers rule defaults, the rules section of cfg and the CLI
// selections, in that order.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	id := rule.ID()

	if ruleCfg, ok := cfg.Rules[id]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if slices.Contains(cfg.EnableRules, id) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisableRules, id) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.Contains(cfg.FixRules, id)
	}
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
