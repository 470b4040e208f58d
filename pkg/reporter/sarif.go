package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint"
	"github.com/yaklabco/vuelint/pkg/runner"
	"github.com/yaklabco/vuelint/pkg/tplast"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "vuelint"
	toolInfoURI    = "https://github.com/yaklabco/vuelint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFMessage     `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage is a plain text message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Columns are 1-based and
// the end column is exclusive.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.opts.Writer)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        version,
			InformationURI: toolInfoURI,
			Rules:          make([]SARIFRule, 0),
		}},
		Results: make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int)
	if r.opts.Registry != nil {
		for _, rule := range r.opts.Registry.Rules() {
			ruleIndex[rule.ID()] = len(run.Tool.Driver.Rules)
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(rule))
		}
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			uri := filepath.ToSlash(r.opts.displayPath(file.Path))

			for _, diag := range file.Result.Diagnostics {
				idx, ok := ruleIndex[diag.RuleID]
				if !ok {
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[diag.RuleID] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:               diag.RuleID,
						Name:             diag.RuleName,
						ShortDescription: SARIFMessage{Text: diag.Message},
					})
				}
				run.Results = append(run.Results, sarifResult(diag, idx, uri, file.Result.Snapshot))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func sarifRule(rule lint.Rule) SARIFRule {
	return SARIFRule{
		ID:               rule.ID(),
		Name:             rule.Name(),
		ShortDescription: SARIFMessage{Text: rule.Description()},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(rule.DefaultSeverity())},
		Properties: map[string]any{
			"tags":    rule.Tags(),
			"fixable": rule.CanFix(),
		},
	}
}

func sarifResult(diag lint.Diagnostic, ruleIdx int, uri string, snapshot *tplast.FileSnapshot) SARIFResult {
	res := SARIFResult{
		RuleID:    diag.RuleID,
		RuleIndex: ruleIdx,
		Level:     severityToSARIFLevel(diag.Severity),
		Message:   SARIFMessage{Text: diag.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region: SARIFRegion{
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
				},
			},
		}},
	}

	// Edits are byte offsets; regions need the snapshot to become lines.
	if len(diag.FixEdits) == 0 || snapshot == nil {
		return res
	}

	description := diag.Suggestion
	if description == "" {
		description = diag.Message
	}

	change := SARIFArtifactChange{ArtifactLocation: SARIFArtifactLocation{URI: uri}}
	for _, edit := range diag.FixEdits {
		pos := snapshot.Position(tplast.SourceRange{StartOffset: edit.StartOffset, EndOffset: edit.EndOffset})
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion: SARIFRegion{
				StartLine:   pos.StartLine,
				StartColumn: pos.StartColumn,
				EndLine:     pos.EndLine,
				EndColumn:   pos.EndColumn,
			},
			InsertedContent: &SARIFInsertedContent{Text: edit.NewText},
		})
	}

	res.Fixes = []SARIFFix{{
		Description:     SARIFMessage{Text: description},
		ArtifactChanges: []SARIFArtifactChange{change},
	}}
	return res
}

func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
