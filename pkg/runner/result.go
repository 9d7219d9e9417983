package runner

import "github.com/cerealean/wabbc/pkg/analysis"

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Target is where the conversion is (or would be) written.
	Target string

	// Output is the converted BBCode.
	Output string

	// Written is true if Target was created or replaced.
	Written bool

	// Unchanged is true if Target already held Output.
	Unchanged bool

	// Skipped is true for empty source files.
	Skipped bool

	// Report is the preflight analysis, set when Config.Preflight is on.
	Report *analysis.Report

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	Discovered        int
	Converted         int
	Written           int
	Unchanged         int
	Skipped           int
	Errored           int
	Findings          int
	FilesWithFindings int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.Errored > 0
}

// Reports returns the preflight reports in file order.
func (r *Result) Reports() []*analysis.Report {
	if r == nil {
		return nil
	}
	var reports []*analysis.Report
	for _, outcome := range r.Files {
		if outcome.Report != nil {
			reports = append(reports, outcome.Report)
		}
	}
	return reports
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Report.HasFindings() {
		r.Stats.Findings += len(outcome.Report.Findings)
		r.Stats.FilesWithFindings++
	}

	switch {
	case outcome.Error != nil:
		r.Stats.Errored++
	case outcome.Skipped:
		r.Stats.Skipped++
	default:
		r.Stats.Converted++
		if outcome.Written {
			r.Stats.Written++
		}
		if outcome.Unchanged {
			r.Stats.Unchanged++
		}
	}
}
