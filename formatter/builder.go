package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gnolang/tslin/internal"
	tt "github.com/gnolang/tslin/internal/types"
)

const tabWidth = 8

var (
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	noStyle         = color.New(color.FgWhite)
)

// severityLabels is the colored prefix printed before the rule name.
var severityLabels = map[string]*color.Color{
	tt.SeverityError.String():   color.New(color.FgRed, color.Bold),
	tt.SeverityWarning.String(): color.New(color.FgHiYellow, color.Bold),
	tt.SeverityInfo.String():    color.New(color.FgHiCyan, color.Bold),
}

// issueFormatter supplies the text/template an issue is rendered with.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter picks the layout for issue: message only when it has
// no source location, a removal note when its fix deletes the flagged
// code, the general snippet layout otherwise.
func getIssueFormatter(issue tt.Issue) issueFormatter {
	switch {
	case issue.Start.Line <= 0:
		return &MessageOnlyFormatter{}
	case len(issue.Fix) > 0 && issue.Fix[0].Text == "":
		return &RemovalFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// GenerateFormattedIssue renders issues, all from the file src was read
// from, in order.
func GenerateFormattedIssue(issues []tt.Issue, src *internal.SourceCode) string {
	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(buildIssue(issue, src, getIssueFormatter(issue)))
	}
	return sb.String()
}

// IssueData is the value the issue templates execute against.
type IssueData struct {
	Category        string
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Suggestion      string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

var templateFuncs = template.FuncMap{
	"header":              header,
	"suggestion":          suggestion,
	"note":                note,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
	"message":             message,
	"removal":             removal,
}

func newIssueData(issue tt.Issue, src *internal.SourceCode) IssueData {
	width := len(strconv.Itoa(issue.End.Line))
	data := IssueData{
		Category:        issue.Category,
		Severity:        issue.Severity.String(),
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		Padding:         strings.Repeat(" ", width+1),
		StartLine:       issue.Start.Line,
		StartColumn:     issue.Start.Column,
		EndLine:         issue.End.Line,
		EndColumn:       issue.End.Column,
		MaxLineNumWidth: width,
		Message:         issue.Message,
		Suggestion:      issue.Suggestion,
		Note:            issue.Note,
		SnippetLines:    src.Lines,
	}
	if isValidLineRange(data.StartLine, data.EndLine, src.Lines) {
		data.CommonIndent = findCommonIndent(src.Lines[data.StartLine-1 : data.EndLine])
	}
	return data
}

func buildIssue(issue tt.Issue, src *internal.SourceCode, f issueFormatter) string {
	tmpl, err := template.New("issue").Funcs(templateFuncs).Parse(f.IssueTemplate())
	if err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, newIssueData(issue, src)); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return sb.String()
}

/***** template functions *****/

// header prints the severity and rule, then an arrow to the location.
func header(rule, severity string, width int, filename string, line, column int) string {
	var sb strings.Builder
	if style, ok := severityLabels[severity]; ok {
		sb.WriteString(style.Sprintf("%s: ", strings.ToLower(severity)))
	}
	sb.WriteString(ruleStyle.Sprintln(rule))
	sb.WriteString(lineStyle.Sprint(strings.Repeat(" ", width) + "--> "))

	location := filename
	if line > 0 {
		location = fmt.Sprintf("%s:%d:%d", filename, line, column)
	}
	sb.WriteString(fileStyle.Sprintln(location))
	return sb.String()
}

// numberedLine prints one gutter-numbered source or suggestion line.
func numberedLine(width, n int, text string) string {
	return lineStyle.Sprintf("%*d | %s\n", width, n, text)
}

func codeSnippet(lines []string, startLine, endLine, width int, commonIndent, padding string) string {
	var sb strings.Builder
	sb.WriteString(lineStyle.Sprintf("%s|\n", padding))
	for n := max(startLine, 1); n <= endLine && n <= len(lines); n++ {
		sb.WriteString(numberedLine(width, n, strings.TrimPrefix(lines[n-1], commonIndent)))
	}
	return sb.String()
}

// underlineAndMessage marks the columns [startColumn, endColumn) with
// tildes and prints the message below. An unknown line range gets the
// message alone.
func underlineAndMessage(msg, padding string, startLine, endLine, startColumn, endColumn int, lines []string, commonIndent string) string {
	var sb strings.Builder
	sb.WriteString(lineStyle.Sprintf("%s| ", padding))

	if !isValidLineRange(startLine, endLine, lines) {
		sb.WriteString(messageStyle.Sprintln(msg))
		return sb.String()
	}

	indent := calculateVisualColumn(commonIndent, len(commonIndent)+1)
	from := max(calculateVisualColumn(lines[startLine-1], startColumn)-indent, 0)
	to := calculateVisualColumn(lines[endLine-1], endColumn) - indent

	sb.WriteString(strings.Repeat(" ", from))
	sb.WriteString(messageStyle.Sprintln(strings.Repeat("~", max(to-from, 1))))
	sb.WriteString(lineStyle.Sprintf("%s= ", padding))
	sb.WriteString(messageStyle.Sprintln(msg))
	return sb.String()
}

func suggestion(text, padding string, width, startLine int) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(suggestionStyle.Sprintln("Suggestion:"))
	sb.WriteString(lineStyle.Sprintf("%s|\n", padding))
	for i, line := range strings.Split(text, "\n") {
		sb.WriteString(numberedLine(width, startLine+i, line))
	}
	sb.WriteString(lineStyle.Sprintf("%s|\n", padding))
	return sb.String()
}

func note(text string) string {
	if text == "" {
		return ""
	}
	return suggestionStyle.Sprint("Note: ") + lineStyle.Sprintln(text)
}

func message(text string) string {
	return messageStyle.Sprintln(text)
}

func isValidLineRange(startLine, endLine int, lines []string) bool {
	return startLine > 0 && startLine <= endLine && endLine <= len(lines)
}

// calculateVisualColumn returns the display width of line before the
// 1-based byte column, expanding tabs to tabWidth stops.
func calculateVisualColumn(line string, column int) int {
	visual := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual++
		}
	}
	return visual
}

// findCommonIndent returns the leading whitespace shared by every
// non-blank line.
func findCommonIndent(lines []string) string {
	indent, seen := "", false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		lead := line[:len(line)-len(trimmed)]
		if !seen {
			indent, seen = lead, true
		} else {
			indent = commonPrefix(indent, lead)
		}
		if indent == "" {
			break
		}
	}
	return indent
}

// commonPrefix returns the longest rune-aligned prefix of a and b.
func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) {
		ra, size := utf8.DecodeRuneInString(a[n:])
		if rb, _ := utf8.DecodeRuneInString(b[n:]); ra != rb {
			break
		}
		n += size
	}
	return a[:n]
}
