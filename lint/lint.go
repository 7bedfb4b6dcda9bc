package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/tslin/internal"
	tt "github.com/gnolang/tslin/internal/types"
)

// DefaultConfigPath is the configuration file read when none is given.
const DefaultConfigPath = ".tslin.yaml"

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	SourceFor(astPath string) (string, bool)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// export the function NewEngine to be used in other packages
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(config.ASTSuffix, config.Rules)
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// fileResult is what a worker sends back for one file.
type fileResult struct {
	path   string
	issues []tt.Issue
	err    error
}

// ProcessPath lints path, walking it when it is a directory. Files are linted
// concurrently, at most runtime.NumCPU() at a time. Files without an AST
// sidecar and files that fail to lint are logged and skipped. When ctx is
// done no further files are started; the issues collected so far are
// returned along with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		issues, err := processor(engine, path)
		if errors.Is(err, internal.ErrMissingAST) {
			logger.Debug("Skipping file without AST", zap.String("file", path))
			return nil, nil
		}
		return issues, err
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := newProgressBar(path, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	resultChan := make(chan fileResult, len(files))

	launched := 0
	var ctxErr error
	for _, filePath := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
		case sem <- struct{}{}:
			launched++
			go func(fp string) {
				defer func() { <-sem }()
				issues, err := processor(engine, fp)
				resultChan <- fileResult{path: fp, issues: issues, err: err}
			}(filePath)
		}
		if ctxErr != nil {
			break
		}
	}

	var issues []tt.Issue
	for range launched {
		res := <-resultChan
		if bar != nil {
			_ = bar.Add(1)
		}
		switch {
		case errors.Is(res.err, internal.ErrMissingAST):
			logger.Debug("Skipping file without AST", zap.String("file", res.path))
		case res.err != nil:
			logger.Error("Error processing file", zap.String("file", res.path), zap.Error(res.err))
		default:
			issues = append(issues, res.issues...)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	sortIssues(issues)
	return issues, ctxErr
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// collectFiles returns the lintable files under root in lexical order.
func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if hasDesiredExtension(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// newProgressBar returns nil when stderr is not a terminal.
func newProgressBar(description string, total int) *progressbar.ProgressBar {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// sortIssues orders issues by file, then by position.
func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Offset < issues[j].Start.Offset
	})
}

var desiredExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
	".js":  true,
}

var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// Config represents the overall configuration with a name, the AST sidecar
// suffix and the per-rule settings.
type Config struct {
	Name      string                   `yaml:"name"`
	ASTSuffix string                   `yaml:"ast_suffix,omitempty"`
	Rules     map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig lists every registered rule at its default severity.
func DefaultConfig() (Config, error) {
	engine, err := internal.NewEngine("", nil)
	if err != nil {
		return Config{}, err
	}
	config := Config{
		Name:      "tslin",
		ASTSuffix: internal.DefaultASTSuffix,
		Rules:     make(map[string]tt.ConfigRule),
	}
	for name, severity := range engine.RuleSeverities() {
		config.Rules[name] = tt.ConfigRule{Severity: severity}
	}
	return config, nil
}

// parseConfigurationFile reads the YAML configuration. A missing file yields
// the zero Config, which the engine treats as defaults.
func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	return config, nil
}
