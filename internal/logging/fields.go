package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldDialect = "dialect"
	FieldInfer   = "infer_code_language"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"

	FieldDiscovered = "discovered"
	FieldConverted  = "converted"
	FieldWritten    = "written"
	FieldUnchanged  = "unchanged"
	FieldSkipped    = "skipped"
	FieldErrored    = "errored"

	FieldRule     = "rule"
	FieldFinding  = "finding"
	FieldLine     = "line"
	FieldDuration = "duration"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
