package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/vuelint/pkg/config"
	"github.com/yaklabco/vuelint/pkg/lint/rules"
)

// ESLint rule levels.
const (
	eslintOff   = "off"
	eslintWarn  = "warn"
	eslintError = "error"
)

// eslintPositionalOptions names the positional options that follow the
// level in an ESLint rule setting, per vuelint rule ID.
//
//nolint:gochecknoglobals // Read-only lookup table.
var eslintPositionalOptions = map[string][]string{
	rules.HTMLQuotesID: {rules.OptionStyle},
}

// eslintSetting is a decoded ESLint rule value such as "warn", 2 or
// ["error", "single"].
type eslintSetting struct {
	level string
	args  []any
}

// parseESLintSetting decodes an ESLint rule value.
func parseESLintSetting(value any) (eslintSetting, error) {
	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return eslintSetting{}, errors.New("empty rule setting")
		}
		level, err := eslintLevel(list[0])
		if err != nil {
			return eslintSetting{}, err
		}
		return eslintSetting{level: level, args: list[1:]}, nil
	}

	level, err := eslintLevel(value)
	if err != nil {
		return eslintSetting{}, err
	}
	return eslintSetting{level: level}, nil
}

// eslintLevel normalizes the numeric and named forms of an ESLint level.
// JSON decodes numbers as float64 and YAML as int.
func eslintLevel(value any) (string, error) {
	switch v := value.(type) {
	case string:
		switch strings.ToLower(v) {
		case eslintOff, "0":
			return eslintOff, nil
		case eslintWarn, "1":
			return eslintWarn, nil
		case eslintError, "2":
			return eslintError, nil
		}
	case int:
		return eslintLevel(fmt.Sprint(v))
	case float64:
		if v == float64(int(v)) {
			return eslintLevel(fmt.Sprint(int(v)))
		}
	}
	return "", fmt.Errorf("invalid rule level %v; must be off, warn, error, 0, 1 or 2", value)
}

// toRuleConfig converts setting for the vuelint rule ruleID. Arguments
// vuelint has no option for are reported as warnings.
func (s eslintSetting) toRuleConfig(ruleID string) (config.RuleConfig, []string) {
	var ruleCfg config.RuleConfig
	var warnings []string

	enabled := s.level != eslintOff
	ruleCfg.Enabled = &enabled
	if !enabled {
		return ruleCfg, nil
	}

	severity := string(config.SeverityWarning)
	if s.level == eslintError {
		severity = string(config.SeverityError)
	}
	ruleCfg.Severity = &severity

	names := eslintPositionalOptions[ruleID]
	for i, arg := range s.args {
		if i >= len(names) {
			warnings = append(warnings, fmt.Sprintf("%s: ignoring unsupported option %v", ruleID, arg))
			continue
		}
		if ruleCfg.Options == nil {
			ruleCfg.Options = make(map[string]any)
		}
		ruleCfg.Options[names[i]] = arg
	}

	return ruleCfg, warnings
}
