package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Parse fields.
	FieldLanguage = "language"
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldShared   = "shared_cache"
	FieldBytes    = "bytes"
	FieldNodes    = "nodes"
	FieldTokens   = "tokens"
	FieldDuration = "duration"

	// Edit fields.
	FieldEdits = "edits"
	FieldWrite = "write"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldCacheHitRate    = "cache_hit_rate"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
