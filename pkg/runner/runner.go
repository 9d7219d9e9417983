package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cerealean/wabbc/internal/logging"
	"github.com/cerealean/wabbc/pkg/analysis"
	"github.com/cerealean/wabbc/pkg/bbcode"
	"github.com/cerealean/wabbc/pkg/config"
	"github.com/cerealean/wabbc/pkg/fsutil"
)

// ErrOutputIsInput is returned when a file would be converted onto itself.
var ErrOutputIsInput = errors.New("output path is the input file")

// Runner converts batches of files with a shared Converter.
type Runner struct {
	Converter *bbcode.Converter
}

// New creates a Runner. A nil converter gets a fresh one.
func New(converter *bbcode.Converter) *Runner {
	if converter == nil {
		converter = bbcode.NewConverter()
	}
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Per-file failures are recorded on their outcome; the returned error is
// reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.Discovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	job := r.newJob(opts)
	logger := logging.FromContext(ctx)
	logger.Debug("converting",
		logging.FieldDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldDialect, job.cfg.Dialect,
	)

	// Outcomes are stored by index so results stay in discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = job.convert(groupCtx, path)
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, waitErr
	}

	return result, nil
}

// job carries the settings shared by every file in a run.
type job struct {
	converter *bbcode.Converter
	cfg       *config.Config
	options   bbcode.Options
	workDir   string
	outDir    string
	ext       string
	write     bool
}

func (r *Runner) newJob(opts Options) *job {
	cfg := opts.effectiveConfig()

	outDir := cfg.Output.Dir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(opts.WorkingDir, outDir)
	}

	return &job{
		converter: r.Converter,
		cfg:       cfg,
		options: bbcode.Options{
			Format:            string(cfg.Dialect),
			InferCodeLanguage: cfg.InferCodeLanguage,
		},
		workDir: opts.WorkingDir,
		outDir:  outDir,
		ext:     cfg.OutputExtension(),
		write:   !cfg.DryRun && !cfg.Stdout,
	}
}

func (j *job) convert(ctx context.Context, path string) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	start := time.Now()

	outcome := FileOutcome{
		Path:   path,
		Target: fsutil.OutputPath(path, j.ext, j.outDir, j.workDir),
	}

	content, _, err := fsutil.ReadText(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if content == "" {
		outcome.Skipped = true
		logger.Debug("skipped empty file")
		return outcome
	}

	if j.cfg.Preflight {
		outcome.Report = analysis.Analyze([]byte(content), j.cfg.Dialect)
		outcome.Report.Path = path
		for _, finding := range outcome.Report.Findings {
			logger.Debug("preflight finding", logging.FieldFinding, finding.Kind, logging.FieldLine, finding.Line)
		}
	}

	output, err := j.converter.Convert(content, j.options)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Output = output

	if !j.write {
		logger.Debug("converted", logging.FieldOutput, outcome.Target, logging.FieldDuration, time.Since(start))
		return outcome
	}

	if filepath.Clean(outcome.Target) == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%w: %s", ErrOutputIsInput, path)
		return outcome
	}

	data := []byte(output)
	if output != "" {
		data = append(data, '\n')
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Target, data, fsutil.DefaultFileMode)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = changed
	outcome.Unchanged = !changed

	logger.Debug("converted",
		logging.FieldOutput, outcome.Target,
		logging.FieldWritten, changed,
		logging.FieldDuration, time.Since(start),
	)
	return outcome
}
