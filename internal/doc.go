// Package internal provides the core of the tslin linter.
//
// The engine pairs each TypeScript source file with an ESTree JSON sidecar
// (by default `<file>.estree.json`), decodes the tree, runs the enabled
// rules over it in a single pre-order traversal and turns their reports
// into issues.
//
// Key components:
//
// Engine: coordinates a lint run. It owns the rule set, per-rule
// severities, ignored rules and paths.
//
// LintRule: a rule from the rules package paired with the severity its
// issues are reported at.
//
// Issue: a single finding with its location, message, suggested
// replacement and the text edits that fix it.
//
// SourceCode: the content of a source file as a collection of lines, used
// when rendering issues.
//
// Usage:
//
//	engine, err := internal.NewEngine("", nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/file.ts")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
