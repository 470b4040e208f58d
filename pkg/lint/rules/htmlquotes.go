package rules

import (
	"fmt"

	"github.com/yaklabco/vuelint/pkg/fix"
	"github.com/yaklabco/vuelint/pkg/langdetect"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/quotes"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

// HTMLQuotesID is the ID of the html-quotes rule.
const HTMLQuotesID = "VT001"

// OptionStyle names the html-quotes option selecting double or single quotes.
const OptionStyle = "style"

// HTMLQuotesRule requires every attribute value in a template to be enclosed
// by the same quote character.
type HTMLQuotesRule struct {
	lint.BaseRule
}

// NewHTMLQuotesRule creates a new html-quotes rule.
func NewHTMLQuotesRule() *HTMLQuotesRule {
	return &HTMLQuotesRule{
		BaseRule: lint.NewBaseRule(
			HTMLQuotesID,
			"html-quotes",
			"Attribute values must be enclosed by the configured quotes",
			[]string{"template", "style", "attributes"},
			true,
		),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *HTMLQuotesRule) DefaultOptions() map[string]any {
	return map[string]any{OptionStyle: string(quotes.StyleDouble)}
}

// ValidateOptions accepts only the style option, set to "double" or "single".
func (r *HTMLQuotesRule) ValidateOptions(options map[string]any) error {
	for key, value := range options {
		if key != OptionStyle {
			return fmt.Errorf("unknown option %q", key)
		}
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %q must be a string, got %T", key, value)
		}
		if _, err := quotes.ParseStyle(name); err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
	}
	return nil
}

// Apply reports attribute values not enclosed by the configured quotes.
// Files whose template ends inside a tag or comment are left alone, as are
// templates written in another language.
func (r *HTMLQuotesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || ctx.Root == nil || !langdetect.IsHTMLTemplate(ctx.File.Lang) {
		return nil, nil
	}

	cfg := quotes.NewConfig(quotes.Style(ctx.OptionString(OptionStyle, string(quotes.StyleDouble))))

	attrs := ctx.ValuedAttributes()
	doc := quotes.Document{
		InvalidEOF:  ctx.File.HasInvalidEOF(),
		Occurrences: make([]quotes.Occurrence, 0, len(attrs)),
	}
	for _, attr := range attrs {
		span := quotes.Span{Start: attr.Value.StartOffset, End: attr.Value.EndOffset}
		doc.Occurrences = append(doc.Occurrences, quotes.NewOccurrence(attr.KeyText(), attr.ValueText(), span))
	}

	violations := quotes.CheckDocument(doc, cfg)

	diags := make([]lint.Diagnostic, 0, len(violations))
	for _, v := range violations {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		valueRange := tplast.SourceRange{StartOffset: v.Span.Start, EndOffset: v.Span.End}
		builder := lint.NewDiagnosticInRange(r.ID(), ctx.File, valueRange, v.Message)
		if v.Fix != nil {
			builder.
				WithSuggestion("Replace with " + v.Fix.Text).
				WithEdit(fix.FromQuoteFix(*v.Fix))
		}
		diags = append(diags, builder.Build())
	}

	return diags, nil
}
