package internal

import (
	"github.com/gnolang/tslin/internal/rules"
	tt "github.com/gnolang/tslin/internal/types"
)

// LintRule is a rule together with the severity its issues are reported at.
type LintRule interface {
	rules.Rule

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

const defaultSeverity = tt.SeverityWarning

type severityRule struct {
	rules.Rule
	severity tt.Severity
}

func newLintRule(r rules.Rule) LintRule {
	return &severityRule{Rule: r, severity: defaultSeverity}
}

func (r *severityRule) Severity() tt.Severity {
	return r.severity
}

func (r *severityRule) SetSeverity(s tt.Severity) {
	r.severity = s
}
