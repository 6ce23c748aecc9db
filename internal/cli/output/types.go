package output

// LintSummary counts diagnostics by severity.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
}

// LintOutput is the JSON document produced by the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one diagnostic in JSON output.
type LintDiagnostic struct {
	RuleID           string    `json:"rule_id"`
	Severity         string    `json:"severity"`
	Message          string    `json:"message"`
	Line             int       `json:"line"`
	Column           int       `json:"column"`
	EndLine          int       `json:"end_line,omitempty"`
	EndColumn        int       `json:"end_column,omitempty"`
	DocumentationURL string    `json:"documentation_url,omitempty"`
	Notes            []string  `json:"notes,omitempty"`
	Fixes            []LintFix `json:"fixes,omitempty"`
}

// LintFix is a proposed fix in JSON output.
type LintFix struct {
	Description string     `json:"description"`
	Edits       []LintEdit `json:"edits"`
}

// LintEdit is one proposed text edit in JSON output.
type LintEdit struct {
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Text      string `json:"text"`
}
