package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnolang/tslin/internal/estree"
	"github.com/gnolang/tslin/internal/nolint"
	"github.com/gnolang/tslin/internal/rules"
	tt "github.com/gnolang/tslin/internal/types"
)

// DefaultASTSuffix is appended to a source path to find its AST sidecar.
const DefaultASTSuffix = ".estree.json"

// ErrMissingAST is returned by Run when a source file has no AST sidecar.
var ErrMissingAST = errors.New("no AST sidecar")

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	astSuffix    string
}

// NewEngine creates a new lint engine. astSuffix may be empty for the
// default; rules overrides per-rule severities.
func NewEngine(astSuffix string, rules map[string]tt.ConfigRule) (*Engine, error) {
	if astSuffix == "" {
		astSuffix = DefaultASTSuffix
	}
	engine := &Engine{astSuffix: astSuffix}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}

	return engine, nil
}

func (e *Engine) applyRules(config map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range config {
		r := e.findRule(key)
		if r == nil {
			return fmt.Errorf("unknown rule %q in configuration", key)
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
	return nil
}

func (e *Engine) registerDefaultRules() {
	for _, r := range rules.All() {
		e.rules[r.Name()] = newLintRule(r)
	}
}

// RuleSeverities reports the configured severity of every registered rule.
func (e *Engine) RuleSeverities() map[string]tt.Severity {
	out := make(map[string]tt.Severity, len(e.rules))
	for name, r := range e.rules {
		out[name] = r.Severity()
	}
	return out
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// ASTPath returns the sidecar path for a source file.
func (e *Engine) ASTPath(filename string) string {
	return filename + e.astSuffix
}

// SourceFor maps a sidecar path back to its source file.
func (e *Engine) SourceFor(astPath string) (string, bool) {
	return strings.CutSuffix(astPath, e.astSuffix)
}

// Run lints filename against its AST sidecar and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	tree, err := os.ReadFile(e.ASTPath(filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", filename, ErrMissingAST)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading AST: %w", err)
	}

	return e.lint(filename, source, tree)
}

// RunSource lints in-memory source with its ESTree JSON document.
func (e *Engine) RunSource(source, tree []byte) ([]tt.Issue, error) {
	return e.lint("", source, tree)
}

func (e *Engine) lint(filename string, source, tree []byte) ([]tt.Issue, error) {
	root, err := estree.Decode(tree, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing AST: %w", err)
	}

	code := rules.NewSourceCode(filename, source)
	reports := rules.Traverse(root, code, e.activeRules())

	issues := make([]tt.Issue, 0, len(reports))
	for _, r := range reports {
		issues = append(issues, e.toIssue(code, r))
	}
	issues = filterNolintIssues(nolint.ParseComments(filename, source), issues)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Start.Offset < issues[j].Start.Offset
	})
	return issues, nil
}

// activeRules returns the enabled rules ordered by name, so traversal
// order and therefore report order are deterministic.
func (e *Engine) activeRules() []rules.Rule {
	names := make([]string, 0, len(e.rules))
	for name, r := range e.rules {
		if e.ignoredRules[name] || r.Severity() == tt.SeverityOff {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	active := make([]rules.Rule, 0, len(names))
	for _, name := range names {
		active = append(active, e.rules[name])
	}
	return active
}

func (e *Engine) toIssue(code *rules.SourceCode, r rules.Report) tt.Issue {
	span := r.Node.Span()
	issue := tt.Issue{
		Rule:     r.Rule,
		Category: "style",
		Filename: code.Filename,
		Message:  r.Message,
		Start:    code.Position(span.Start),
		End:      code.Position(span.End),
		Severity: defaultSeverity,
	}
	if lr := e.findRule(r.Rule); lr != nil {
		issue.Severity = lr.Severity()
	}

	if r.Fix == nil {
		return issue
	}
	edit := tt.Edit{Start: r.Fix.Span.Start, End: r.Fix.Span.End, Text: r.Fix.Text}
	if edit.Start < 0 || edit.End > len(code.Text) || edit.Start > edit.End {
		return issue
	}
	issue.Fix = []tt.Edit{edit}
	issue.Confidence = 1.0
	issue.Suggestion = suggestion(code.Text, edit)
	if edit.Text == "" {
		issue.Note = "The statement has no effect and can be removed."
	}
	return issue
}

// suggestion renders the source lines touched by edit with edit applied.
func suggestion(text []byte, edit tt.Edit) string {
	start := bytes.LastIndexByte(text[:edit.Start], '\n') + 1
	end := len(text)
	if i := bytes.IndexByte(text[edit.End:], '\n'); i >= 0 {
		end = edit.End + i
	}
	fixed := string(text[start:edit.Start]) + edit.Text + string(text[edit.End:end])
	return strings.TrimRight(fixed, "\r")
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath excludes files matching path, either a glob pattern or a
// directory prefix.
func (e *Engine) IgnorePath(path string) {
	if path == "" {
		return
	}
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	clean := filepath.Clean(filename)
	for _, p := range e.ignoredPaths {
		if ok, _ := filepath.Match(p, clean); ok {
			return true
		}
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// filterNolintIssues filters issues based on ignore comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
