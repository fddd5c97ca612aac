package model

// FunctionReport records the outcome for a single function.
type FunctionReport struct {
	Name    string      `yaml:"name"`
	Outcome OutcomeKind `yaml:"outcome"`
	Target  Path        `yaml:"target"`
	Reason  SkipReason  `yaml:"reason,omitempty"`
}

// SplitReport summarizes one split run. It is what the report store
// persists and what the UI renders at the end of a run.
type SplitReport struct {
	Module    Path             `yaml:"module"`
	DryRun    bool             `yaml:"dry_run"`
	Withheld  bool             `yaml:"withheld"`
	Extracted int              `yaml:"extracted"`
	Skipped   int              `yaml:"skipped"`
	Backup    Path             `yaml:"backup,omitempty"`
	Functions []FunctionReport `yaml:"functions,omitempty"`
	Warnings  []string         `yaml:"warnings,omitempty"`
}
