package formatter

// MessageOnlyFormatter prints the header and message of an issue that has
// no usable source position.
type MessageOnlyFormatter struct{}

func (f *MessageOnlyFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{message .Message}}
`
}
