package formatter

// RemovalFormatter is used when the fix deletes the flagged code outright,
// so there is no replacement line worth printing.
type RemovalFormatter struct{}

func (f *RemovalFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{removal "remove the highlighted code"}}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

func removal(text string) string {
	return suggestionStyle.Sprint("Suggestion: ") + noStyle.Sprintf("%s\n", text)
}
