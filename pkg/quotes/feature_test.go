package quotes_test

import (
	"context"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/yaklabco/vuelint/pkg/quotes"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features")},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}

// scenarioState holds per-scenario state for step definitions.
type scenarioState struct {
	cfg        quotes.Config
	doc        quotes.Document
	keys       []string
	violations []quotes.Violation
	checked    bool
}

func initializeScenario(sc *godog.ScenarioContext) {
	state := &scenarioState{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = scenarioState{cfg: quotes.NewConfig(quotes.StyleDouble)}
		return ctx, nil
	})

	sc.Step(`^the quote style is "([^"]*)"$`, state.quoteStyleIs)
	sc.Step(`^the document has an invalid end of file$`, state.invalidEOF)
	sc.Step(`^the attribute "([^"]*)" has the value <([^>]*)>$`, state.attributeHasValue)
	sc.Step(`^the document is checked$`, state.documentIsChecked)
	sc.Step(`^no violation is reported$`, state.noViolation)
	sc.Step(`^(\d+) violations? (?:is|are) reported$`, state.violationCount)
	sc.Step(`^violation (\d+) is fixed to <([^>]*)>$`, state.violationFixedTo)
	sc.Step(`^violation (\d+) says "([^"]*)"$`, state.violationSays)
	sc.Step(`^the fixed value of violation (\d+) decodes to <([^>]*)>$`, state.fixedValueDecodesTo)
	sc.Step(`^checking the fixed values reports no violation$`, state.recheckFixed)
}

func (s *scenarioState) quoteStyleIs(name string) error {
	style, err := quotes.ParseStyle(name)
	if err != nil {
		return err
	}
	s.cfg = quotes.NewConfig(style)
	return nil
}

func (s *scenarioState) invalidEOF() error {
	s.doc.InvalidEOF = true
	return nil
}

func (s *scenarioState) attributeHasValue(key, raw string) error {
	start := 0
	if n := len(s.doc.Occurrences); n > 0 {
		start = s.doc.Occurrences[n-1].Span.End + 1
	}
	span := quotes.Span{Start: start, End: start + len(raw)}
	s.doc.Occurrences = append(s.doc.Occurrences, quotes.NewOccurrence(key, raw, span))
	s.keys = append(s.keys, key)
	return nil
}

func (s *scenarioState) documentIsChecked() error {
	s.violations = quotes.CheckDocument(s.doc, s.cfg)
	s.checked = true
	return nil
}

func (s *scenarioState) noViolation() error {
	return s.violationCount(0)
}

func (s *scenarioState) violationCount(want int) error {
	if !s.checked {
		return errors.New("document was not checked")
	}
	if len(s.violations) != want {
		return fmt.Errorf("expected %d violations, got %d", want, len(s.violations))
	}
	return nil
}

func (s *scenarioState) violation(n int) (quotes.Violation, error) {
	if n < 1 || n > len(s.violations) {
		return quotes.Violation{}, fmt.Errorf("no violation %d (have %d)", n, len(s.violations))
	}
	return s.violations[n-1], nil
}

func (s *scenarioState) violationFixedTo(n int, want string) error {
	v, err := s.violation(n)
	if err != nil {
		return err
	}
	if v.Fix == nil {
		return fmt.Errorf("violation %d has no fix", n)
	}
	if v.Fix.Text != want {
		return fmt.Errorf("expected fix %s, got %s", want, v.Fix.Text)
	}
	return nil
}

func (s *scenarioState) violationSays(n int, want string) error {
	v, err := s.violation(n)
	if err != nil {
		return err
	}
	if v.Message != want {
		return fmt.Errorf("expected message %q, got %q", want, v.Message)
	}
	return nil
}

func (s *scenarioState) fixedValueDecodesTo(n int, want string) error {
	v, err := s.violation(n)
	if err != nil {
		return err
	}
	text := v.Fix.Text
	if len(text) < 2 || text[0] != s.cfg.Char || text[len(text)-1] != s.cfg.Char {
		return fmt.Errorf("fixed value %s is not delimited by %c", text, s.cfg.Char)
	}
	got := html.UnescapeString(text[1 : len(text)-1])
	if got != want {
		return fmt.Errorf("expected decoded value %s, got %s", want, got)
	}
	return nil
}

func (s *scenarioState) recheckFixed() error {
	for i, v := range s.violations {
		occ := quotes.NewOccurrence(s.keyFor(v), v.Fix.Text, v.Fix.Span)
		if _, found := quotes.Check(occ, s.cfg); found {
			return fmt.Errorf("fixed value %d (%s) still violates", i+1, v.Fix.Text)
		}
	}
	return nil
}

func (s *scenarioState) keyFor(v quotes.Violation) string {
	for i, occ := range s.doc.Occurrences {
		if occ.Span == v.Span {
			return s.keys[i]
		}
	}
	return ""
}
