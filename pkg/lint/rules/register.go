package rules

import "github.com/yaklabco/vuelint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewHTMLQuotesRule()) // VT001
}

// RegisterESLintAliases maps eslint-plugin-vue rule names onto vuelint rule
// IDs, so ESLint-style configuration keys resolve.
func RegisterESLintAliases(registry *lint.Registry) {
	registry.RegisterAlias("vue/html-quotes", HTMLQuotesID)
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterESLintAliases(lint.DefaultRegistry)
}
