package lint

import (
	"context"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// RuleContext is everything a rule needs for one file.
//
// It stores context.Context as a field because it is a short-lived parameter
// object created per rule invocation; this keeps the Rule interface to a
// single Apply method.
type RuleContext struct {
	Ctx context.Context

	File *tplast.FileSnapshot

	// Root is File.Root.
	Root *tplast.Node

	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Builder accumulates text edits for auto-fix.
	Builder *fix.EditBuilder

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	cache *nodeCache
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *tplast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *tplast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
		cache:      &nodeCache{},
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

func (rc *RuleContext) nodes() *nodeCache {
	if rc.cache == nil {
		rc.cache = &nodeCache{}
	}
	rc.cache.build(rc.Root)
	return rc.cache
}

// Elements returns every element of the template in document order.
func (rc *RuleContext) Elements() []*tplast.Node {
	return rc.nodes().elements
}

// Attributes returns every attribute of the template in document order.
func (rc *RuleContext) Attributes() []*tplast.Attribute {
	return rc.nodes().attributes
}

// ValuedAttributes returns the attributes that were written with a value.
func (rc *RuleContext) ValuedAttributes() []*tplast.Attribute {
	return rc.nodes().valued
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	if s, ok := rc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}
