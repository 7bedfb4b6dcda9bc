package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tslin/formatter"
	"github.com/gnolang/tslin/internal"
	tt "github.com/gnolang/tslin/internal/types"
	"github.com/gnolang/tslin/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint files whenever they or their AST sidecars change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine(logger)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		w, err := lint.NewWatcher(engine, logger, reportWatched)
		if err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		for _, path := range args {
			if err := w.Add(path); err != nil {
				logger.Fatal("Failed to watch path", zap.String("path", path), zap.Error(err))
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("Watching for changes", zap.Strings("paths", args))
		if err := w.Run(ctx); err != nil {
			logger.Error("Watcher stopped", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
}

func reportWatched(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		fmt.Printf("no issues found in %s\n", filename)
		return
	}

	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		return
	}
	fmt.Println(formatter.GenerateFormattedIssue(issues, sourceCode))
}
