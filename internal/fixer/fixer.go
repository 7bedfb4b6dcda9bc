package fixer

import (
	"fmt"
	"io"
	"os"
	"sort"

	tt "github.com/gnolang/tslin/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
	Out           io.Writer
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
		Out:           os.Stdout,
	}
}

// Fix applies the edits of issues to filename. Issues below the confidence
// threshold, without edits, or overlapping an edit already taken are left
// alone. It returns the number of issues fixed.
func (f *Fixer) Fix(filename string, issues []tt.Issue) (int, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	var selected []tt.Issue
	for _, issue := range issues {
		if len(issue.Fix) == 0 || issue.Confidence < f.MinConfidence {
			continue
		}
		selected = append(selected, issue)
	}

	if f.DryRun {
		for _, issue := range selected {
			fmt.Fprintf(f.Out, "Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Fprintf(f.Out, "Suggestion:\n%s\n", issue.Suggestion)
		}
		return len(selected), nil
	}

	fixed, applied := Apply(content, selected)
	if applied == 0 {
		return 0, nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(f.Out, "Fixed %d issue(s) in %s\n", applied, filename)
	return applied, nil
}

// Apply returns content with the edits of issues applied and the number of
// issues whose edits were all applied. Edits are applied back to front;
// an issue is skipped entirely when any of its edits overlaps one already
// applied or falls outside content.
func Apply(content []byte, issues []tt.Issue) ([]byte, int) {
	issues = append([]tt.Issue(nil), issues...)
	sort.SliceStable(issues, func(i, j int) bool {
		return lastEnd(issues[i]) > lastEnd(issues[j])
	})

	out := append([]byte(nil), content...)
	boundary := len(content) + 1
	applied := 0
	for _, issue := range issues {
		edits := append([]tt.Edit(nil), issue.Fix...)
		sort.Slice(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })
		if !fits(edits, boundary, len(content)) {
			continue
		}
		for _, e := range edits {
			out = append(out[:e.Start], append([]byte(e.Text), out[e.End:]...)...)
			boundary = e.Start
		}
		applied++
	}
	return out, applied
}

func lastEnd(issue tt.Issue) int {
	end := -1
	for _, e := range issue.Fix {
		if e.End > end {
			end = e.End
		}
	}
	return end
}

// fits reports whether edits, sorted back to front, are in range and end
// at or before boundary without overlapping each other.
func fits(edits []tt.Edit, boundary, size int) bool {
	if len(edits) == 0 {
		return false
	}
	for _, e := range edits {
		if e.Start < 0 || e.End > size || e.Start > e.End || e.End > boundary {
			return false
		}
		// an empty insertion at the boundary would land inside the
		// previous replacement
		if e.End == boundary && e.Start == e.End {
			return false
		}
		boundary = e.Start
	}
	return true
}
