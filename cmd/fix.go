package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tslin/internal/fixer"
	"github.com/gnolang/tslin/lint"
)

var (
	dryRun              bool
	confidenceThreshold float64
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// initialize the lint engine
		engine, err := newEngine(logger)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		fix := fixer.New(dryRun, confidenceThreshold)
		runAutoFix(ctx, logger, engine, args, fix)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
	fixCmd.Flags().Float64Var(&confidenceThreshold, "confidence", 0.75, "Confidence threshold for auto-fixing (0.0 to 1.0)")
	fixCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	fixCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
}

// runAutoFix lints paths and applies the fixes file by file. It returns the
// number of issues fixed.
func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, fix *fixer.Fixer) int {
	total := 0
	for _, path := range paths {
		issues, err := lint.ProcessPath(ctx, logger, engine, path, lint.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		issuesByFile, sortedFiles := groupByFile(issues)
		for _, filename := range sortedFiles {
			n, err := fix.Fix(filename, issuesByFile[filename])
			if err != nil {
				logger.Error("error fixing issues", zap.String("file", filename), zap.Error(err))
				continue
			}
			if n > 0 && !fix.DryRun {
				// offsets in the sidecar no longer match the rewritten source
				logger.Warn("AST sidecar is stale, regenerate it before linting again", zap.String("file", filename))
			}
			total += n
		}
	}
	return total
}
