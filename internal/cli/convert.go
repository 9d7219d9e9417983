package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cerealean/wabbc/internal/logging"
	"github.com/cerealean/wabbc/internal/ui/pretty"
	"github.com/cerealean/wabbc/pkg/analysis"
	"github.com/cerealean/wabbc/pkg/bbcode"
	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/fsutil"
	"github.com/cerealean/wabbc/pkg/pipeline"
	"github.com/cerealean/wabbc/pkg/runner"
)

// Stdin is selected with "-" and reported as "<stdin>".
const (
	stdinArg  = "-"
	stdinName = "<stdin>"
)

type convertFlags struct {
	dialect   string
	infer     bool
	stdout    bool
	outDir    string
	ext       string
	dryRun    bool
	jobs      int
	ignore    []string
	preflight bool
	explain   bool
}

func newConvertCommand(converter *bbcode.Converter) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Markdown files to BBCode",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags, converter)
		},
	}

	addConvertFlags(cmd, flags)

	return cmd
}

const convertLongDescription = `Convert Markdown to BBCode.

With no paths and piped input, or with "-", stdin is converted to stdout.
Otherwise every .md and .markdown file under the given paths (default: the
current directory) is converted to a sibling file with the output extension.

Examples:
  cat post.md | wabbc convert              # stdin to stdout
  wabbc convert --dialect extended docs/   # World Anvil tags
  wabbc convert --out-dir build README.md  # write build/README.bbcode
  wabbc convert --stdout notes.md          # print instead of writing
  wabbc convert --dry-run --preflight      # report what would not convert
  wabbc convert --debug --explain - < a.md # log the rules that fired`

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "output dialect: generic, extended (default generic)")
	cmd.Flags().BoolVar(&flags.infer, "infer-lang", false, "label unlabelled code fences with a detected language (extended)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print conversions instead of writing files")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write output under this directory, mirroring the source tree")
	cmd.Flags().StringVar(&flags.ext, "ext", "", "output file extension (default .bbcode)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing any files")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel conversions (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip, added to the configured ones")
	cmd.Flags().BoolVar(&flags.preflight, "preflight", false, "report Markdown that will not convert faithfully")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "log each rule that changed the text (debug level)")
}

// cliConfig maps explicitly set flags onto a config layer.
func (f *convertFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		InferCodeLanguage: f.infer,
		Preflight:         f.preflight,
		Stdout:            f.stdout,
		DryRun:            f.dryRun,
		Jobs:              f.jobs,
		Output: config.OutputConfig{
			Extension: f.ext,
			Dir:       f.outDir,
		},
	}

	if cmd.Flags().Changed("dialect") {
		dialect, err := config.ParseDialect(f.dialect)
		if err != nil {
			return nil, fmt.Errorf("%w: --dialect: %w", ErrInvalidUsage, err)
		}
		cfg.Dialect = dialect
	}
	if f.jobs < 0 {
		return nil, fmt.Errorf("%w: --jobs must be >= 0", ErrInvalidUsage)
	}

	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags, converter *bbcode.Converter) error {
	logger := logging.FromContext(cmd.Context())

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldDialect, cfg.Dialect,
		logging.FieldInfer, cfg.InferCodeLanguage,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	if useStdin(cmd, args) {
		return convertStdin(cmd, cfg, flags.explain, converter)
	}
	if len(args) > 1 && slices.Contains(args, stdinArg) {
		return fmt.Errorf("%w: %q cannot be combined with file paths", ErrInvalidUsage, stdinArg)
	}
	if flags.explain {
		logger.Warn("--explain only applies to stdin conversion")
	}

	return convertFiles(cmd, args, workDir, cfg, converter, flags.ignore)
}

// useStdin reports whether input comes from stdin: an explicit "-", or no
// paths while stdin is not a terminal.
func useStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinArg {
		return true
	}
	if len(args) > 0 {
		return false
	}
	if file, ok := cmd.InOrStdin().(*os.File); ok {
		return !term.IsTerminal(int(file.Fd()))
	}
	return true
}

func convertStdin(cmd *cobra.Command, cfg *config.Config, explain bool, converter *bbcode.Converter) error {
	logger := logging.FromContext(cmd.Context())

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	text, err := fsutil.DecodeText(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", stdinName, err)
	}
	if text == "" {
		return fmt.Errorf("%w: %s: %w", ErrInvalidUsage, stdinName, bbcode.ErrInvalidInput)
	}

	if cfg.Preflight {
		report := analysis.Analyze([]byte(text), cfg.Dialect)
		report.Path = stdinName
		styles := pretty.NewStyles(colorEnabled(cmd, cmd.ErrOrStderr()))
		if out := styles.FormatReport(report); out != "" {
			fmt.Fprint(cmd.ErrOrStderr(), out)
		}
	}

	var trace func(pipeline.Step)
	if explain {
		trace = func(step pipeline.Step) {
			if step.Changed {
				logger.Debug("rule applied", logging.FieldRule, step.Rule)
			}
		}
	}

	started := time.Now()
	output, err := converter.ConvertTrace(text, bbcode.Options{
		Format:            string(cfg.Dialect),
		InferCodeLanguage: cfg.InferCodeLanguage,
	}, trace)
	if err != nil {
		return fmt.Errorf("convert %s: %w", stdinName, err)
	}
	logger.Debug("converted", logging.FieldPath, stdinName, logging.FieldDuration, time.Since(started))

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func convertFiles(
	cmd *cobra.Command,
	args []string,
	workDir string,
	cfg *config.Config,
	converter *bbcode.Converter,
	ignore []string,
) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: append(append([]string(nil), cfg.Ignore...), ignore...),
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting conversion run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	started := time.Now()
	result, err := runner.New(converter).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}
	elapsed := time.Since(started)

	logger.Debug("conversion run finished",
		logging.FieldConverted, result.Stats.Converted,
		logging.FieldWritten, result.Stats.Written,
		logging.FieldUnchanged, result.Stats.Unchanged,
		logging.FieldSkipped, result.Stats.Skipped,
		logging.FieldErrored, result.Stats.Errored,
		logging.FieldDuration, elapsed,
	)

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	for _, outcome := range result.Files {
		path := displayPath(workDir, outcome.Path)
		switch {
		case outcome.Error != nil:
			logger.Error("conversion failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		case outcome.Skipped:
			logger.Debug("skipped empty file", logging.FieldPath, path)
		case cfg.Stdout:
			if _, err := fmt.Fprintln(stdout, outcome.Output); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
		default:
			logOutcome(logger, path, displayPath(workDir, outcome.Target), outcome)
		}
	}

	colored := colorEnabled(cmd, stderr)
	styles := pretty.NewStyles(colored)
	if cfg.Preflight {
		table := pretty.NewTableFormatter(styles, colored, terminalWidth(stderr))
		writePreflight(stderr, styles, table, workDir, result.Reports())
	}
	fmt.Fprint(stderr, styles.FormatSummaryOneLine(result.Stats, cfg.DryRun, elapsed))

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

func logOutcome(logger *log.Logger, path, target string, outcome runner.FileOutcome) {
	switch {
	case outcome.Written:
		logger.Debug("wrote", logging.FieldPath, path, logging.FieldOutput, target)
	case outcome.Unchanged:
		logger.Debug("unchanged", logging.FieldPath, path, logging.FieldOutput, target)
	default:
		logger.Debug("converted", logging.FieldPath, path, logging.FieldOutput, target)
	}
}

func writePreflight(w io.Writer, styles *pretty.Styles, table *pretty.TableFormatter, workDir string, reports []*analysis.Report) {
	relative := make([]*analysis.Report, 0, len(reports))
	for _, report := range reports {
		clone := *report
		clone.Path = displayPath(workDir, report.Path)
		relative = append(relative, &clone)
	}

	if out := table.FormatFindings(relative); out != "" {
		fmt.Fprint(w, out)
	}
	fmt.Fprint(w, styles.FormatPreflightSummary(analysis.Summarize(relative, analysis.SortByCount)))
}

// displayPath shortens path relative to workDir when it lies beneath it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = colorAuto
	}
	return pretty.IsColorEnabled(mode, w)
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
