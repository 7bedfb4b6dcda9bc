package nolint

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIgnoreRuleNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []string
	}{
		{"rule1,rule2,rule3", []string{"rule1", "rule2", "rule3"}},
		{" rule1 rule2", []string{"rule1", "rule2"}},
		{"rule1, rule2 -- legacy api", []string{"rule1", "rule2"}},
		{"", nil},
	}

	for _, tt := range tests {
		result := parseIgnoreRuleNames(tt.input)
		assert.Len(t, result, len(tt.expected), tt.input)
		for _, rule := range tt.expected {
			assert.Contains(t, result, rule, tt.input)
		}
	}
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	src := `const a = 1;
// deno-lint-ignore no-unnecessary-type-assertion
const b = a as number;
const c = String(a); // tslin-ignore
// tslin-ignore: rule-x, rule-y
const d = 1;

const e = 2;
// deno-lint-ignore-file
`
	manager := ParseComments("a.ts", []byte(src))

	pos := func(line int) token.Position {
		return token.Position{Filename: "a.ts", Line: line}
	}

	tests := []struct {
		name string
		line int
		rule string
		want bool
	}{
		{"directive line itself", 2, "no-unnecessary-type-assertion", true},
		{"next line listed rule", 3, "no-unnecessary-type-assertion", true},
		{"next line other rule", 3, "no-unnecessary-type-conversion", false},
		{"inline without rules", 4, "anything", true},
		{"colon list", 6, "rule-y", true},
		{"colon list other rule", 6, "rule-z", false},
		{"blank line breaks scope", 8, "rule-x", false},
		{"late file directive ignored", 1, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, manager.IsNolint(pos(tt.line), tt.rule))
		})
	}

	assert.False(t, manager.IsNolint(token.Position{Filename: "b.ts", Line: 3}, "no-unnecessary-type-assertion"))
}

func TestFileDirective(t *testing.T) {
	t.Parallel()

	src := `// Copyright header
// deno-lint-ignore-file no-unnecessary-boolean-literal-compare

function f(b: boolean) {
  return b === true;
}
`
	manager := ParseComments("f.ts", []byte(src))
	pos := token.Position{Filename: "f.ts", Line: 5}
	assert.True(t, manager.IsNolint(pos, "no-unnecessary-boolean-literal-compare"))
	assert.False(t, manager.IsNolint(pos, "no-unnecessary-type-conversion"))
}

func TestNotADirective(t *testing.T) {
	t.Parallel()

	src := `const url = "http://example.com";
// deno-lint-ignorethis
const x = 1;
// tslin-ignore-me
const y = 2;
`
	manager := ParseComments("u.ts", []byte(src))
	for line := 1; line <= 5; line++ {
		assert.False(t, manager.IsNolint(token.Position{Filename: "u.ts", Line: line}, "r"), "line %d", line)
	}
}

func TestDirectiveAfterStringLiteral(t *testing.T) {
	t.Parallel()

	src := `const url = "http://example.com"; // tslin-ignore
log("// tslin-ignore");
const re = 'it\'s // here' /* // tslin-ignore */;
`
	manager := ParseComments("s.ts", []byte(src))
	pos := func(line int) token.Position {
		return token.Position{Filename: "s.ts", Line: line}
	}

	assert.True(t, manager.IsNolint(pos(1), "r"))
	assert.False(t, manager.IsNolint(pos(2), "r"))
	assert.False(t, manager.IsNolint(pos(3), "r"))
}

func TestCommentStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want int
	}{
		{"// x", 0},
		{"a(); // x", 5},
		{`"http://a" // x`, 11},
		{"`//` + s", -1},
		{`"a\"//" // x`, 8},
		{"/* // */ // x", 9},
		{"/* open", -1},
		{"a / b", -1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, commentStart(tc.line), tc.line)
	}
}
