package nolint

import (
	"errors"
	"go/token"
	"strings"
)

const (
	denoPrefix = "deno-lint-ignore"
	filePrefix = "deno-lint-ignore-file"
	ownPrefix  = "tslin-ignore"
)

var errNotDirective = errors.New("not an ignore directive")

// Manager manages ignore scopes and checks if a position is suppressed.
type Manager struct {
	// scopes maps filename to a slice of ignore scopes.
	scopes map[string][]nolintScope
}

// nolintScope is an inclusive line range where the listed rules are
// suppressed. An empty rule set suppresses every rule.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseComments scans src for line comments carrying ignore directives:
//
//	// deno-lint-ignore rule-a rule-b   suppresses the next line
//	// tslin-ignore rule-a, rule-b      same, tslin spelling
//	foo(); // tslin-ignore rule-a        suppresses its own line
//	// deno-lint-ignore-file            suppresses the whole file
//
// A file directive only counts before the first line of code.
func ParseComments(filename string, src []byte) *Manager {
	manager := Manager{scopes: make(map[string][]nolintScope)}
	lines := strings.Split(string(src), "\n")

	seenCode := false
	for i, line := range lines {
		lineNo := i + 1
		idx := commentStart(line)
		if idx < 0 {
			if strings.TrimSpace(line) != "" {
				seenCode = true
			}
			continue
		}
		standalone := strings.TrimSpace(line[:idx]) == ""
		if !standalone {
			seenCode = true
		}

		rules, fileWide, err := parseComment(line[idx+2:])
		if err != nil {
			continue
		}

		var ns nolintScope
		switch {
		case fileWide:
			if seenCode {
				continue
			}
			ns = nolintScope{rules: rules, start: 1, end: len(lines)}
		case standalone:
			ns = nolintScope{rules: rules, start: lineNo, end: lineNo + 1}
		default:
			ns = nolintScope{rules: rules, start: lineNo, end: lineNo}
		}
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return &manager
}

// commentStart returns the index of the `//` opening a line comment, or -1.
// Slashes inside string literals and block comments do not count. Strings
// are assumed to close on the line they open.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return i
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			end := strings.Index(line[i+2:], "*/")
			if end < 0 {
				return -1
			}
			i += end + 3
		}
	}
	return -1
}

// parseComment parses the text after `//`.
func parseComment(text string) (map[string]struct{}, bool, error) {
	text = strings.TrimSpace(text)

	if rest, ok := cutDirective(text, filePrefix); ok {
		return parseIgnoreRuleNames(rest), true, nil
	}
	for _, prefix := range []string{denoPrefix, ownPrefix} {
		if rest, ok := cutDirective(text, prefix); ok {
			return parseIgnoreRuleNames(rest), false, nil
		}
	}
	return nil, false, errNotDirective
}

// cutDirective strips prefix when it is followed by the end of the comment,
// whitespace or a colon.
func cutDirective(text, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(text, prefix)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ':' {
		return "", false
	}
	return strings.TrimPrefix(rest, ":"), true
}

// parseIgnoreRuleNames parses the rule list of a directive. Names are
// separated by commas or whitespace; anything after ` -- ` is an
// explanation and ignored.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if before, _, found := strings.Cut(text, "--"); found {
		text = before
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, rule := range fields {
		rulesMap[rule] = struct{}{}
	}
	return rulesMap
}

// IsNolint checks if a given position and rule are suppressed.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start || pos.Line > ns.end {
			continue
		}
		// If the rules list is empty, the directive applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
