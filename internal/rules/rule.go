// Package rules implements the tslin lint rules and the small host surface
// they run against: a per-traversal Context with reporting, source text
// access and a text Fixer, and a pre-order Traverse that dispatches nodes
// to each rule's Visitor by kind.
package rules

import (
	"go/token"
	"sort"

	"github.com/gnolang/tslin/internal/ast"
)

// Visitor maps the node kinds a rule is interested in to its callbacks.
type Visitor map[ast.Kind]func(ast.Node)

// Rule is a lint rule. Create is called once per traversal and returns the
// visitor for that traversal; any state the rule keeps lives in the
// closure and is dropped with it.
type Rule interface {
	Name() string
	Create(ctx *Context) Visitor
}

// Edit replaces the bytes in Span with Text.
type Edit struct {
	Span ast.Span
	Text string
}

// Fixer builds edits over existing node boundaries.
type Fixer struct{}

func (Fixer) ReplaceText(n ast.Node, text string) Edit {
	return Edit{Span: n.Span(), Text: text}
}

func (Fixer) Remove(n ast.Node) Edit {
	return Edit{Span: n.Span()}
}

// Descriptor is what a rule hands to Context.Report.
type Descriptor struct {
	Node    ast.Node
	Message string
	Fix     func(Fixer) Edit
}

// Report is a registered diagnostic.
type Report struct {
	Rule    string
	Node    ast.Node
	Message string
	Fix     *Edit
}

// Context is the host surface handed to Rule.Create.
type Context struct {
	rule    string
	source  *SourceCode
	reports *[]Report
}

// SourceCode returns the text the tree was parsed from.
func (c *Context) SourceCode() *SourceCode {
	return c.source
}

// Report registers one diagnostic. The fix, if any, is resolved
// immediately.
func (c *Context) Report(d Descriptor) {
	if d.Node == nil {
		return
	}
	r := Report{Rule: c.rule, Node: d.Node, Message: d.Message}
	if d.Fix != nil {
		edit := d.Fix(Fixer{})
		r.Fix = &edit
	}
	*c.reports = append(*c.reports, r)
}

// SourceCode gives rules the original text of nodes.
type SourceCode struct {
	Filename string
	Text     []byte
	lines    []int // byte offset of each line start
}

func NewSourceCode(filename string, text []byte) *SourceCode {
	lines := []int{0}
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &SourceCode{Filename: filename, Text: text, lines: lines}
}

// GetText returns the exact source substring covered by n. Spans outside
// the text yield "".
func (s *SourceCode) GetText(n ast.Node) string {
	if n == nil {
		return ""
	}
	sp := n.Span()
	if sp.Start < 0 || sp.End > len(s.Text) || sp.Start > sp.End {
		return ""
	}
	return string(s.Text[sp.Start:sp.End])
}

// Position converts a byte offset to a 1-based line and column.
func (s *SourceCode) Position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return token.Position{
		Filename: s.Filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - s.lines[line] + 1,
	}
}

// LineCount returns the number of lines in the text.
func (s *SourceCode) LineCount() int {
	return len(s.lines)
}

// replaceWith returns a fix that substitutes text for node. An empty text
// means the replacement span could not be rendered, so no fix is offered.
func replaceWith(node ast.Node, text string) func(Fixer) Edit {
	if text == "" {
		return nil
	}
	return func(f Fixer) Edit {
		return f.ReplaceText(node, text)
	}
}
