package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tslin/formatter"
	"github.com/gnolang/tslin/internal"
	"github.com/gnolang/tslin/internal/rules"
	tt "github.com/gnolang/tslin/internal/types"
	"github.com/gnolang/tslin/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine(logger)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		found, err := runNormalLintProcess(ctx, logger, engine, args, os.Stdout, lintJsonOutput, outPath)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		if found > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// newEngine builds the engine from the configuration file and applies the
// --ignore and --ignore-paths flags.
func newEngine(logger *zap.Logger) (*internal.Engine, error) {
	engine, err := lint.New(cfgFile)
	if err != nil {
		return nil, err
	}
	applyIgnores(logger, engine, ignoreRules, ignorePaths)
	return engine, nil
}

func applyIgnores(logger *zap.Logger, engine lint.LintEngine, ruleList, pathList string) {
	for _, rule := range splitList(ruleList) {
		if _, ok := rules.ByName(rule); !ok {
			logger.Warn("Ignoring unknown rule", zap.String("rule", rule), zap.Strings("known", rules.Names()))
			continue
		}
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(pathList) {
		engine.IgnorePath(path)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// runNormalLintProcess lints paths, prints the issues and returns how many
// were found.
func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, out io.Writer, isJson bool, jsonOutput string) (int, error) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		return 0, err
	}

	if err := printIssues(logger, out, issues, isJson, jsonOutput); err != nil {
		return 0, err
	}
	return len(issues), nil
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, out io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			fmt.Fprintln(out, formatter.GenerateFormattedIssue(fileIssues, sourceCode))
		}
		return nil
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(out, string(d))
		return nil
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
