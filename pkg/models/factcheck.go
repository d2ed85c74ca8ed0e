package models

// Issue severity levels, ordered by impact on publishability.
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// Issue is a single defect found during fact verification.
type Issue struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// FactCheckReport is the outcome of verifying a draft.
// Invariant: Passed is true if and only if Score >= the threshold the report
// was evaluated against, and a failing report always carries at least one issue.
type FactCheckReport struct {
	Score  int     `json:"score"` // 0-100
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues"`

	// ClaimsToVerify lists specific factual claims the semantic check flagged
	// for human follow-up. Informational; does not affect the score.
	ClaimsToVerify []string `json:"claims_to_verify,omitempty"`
}

// IssueDescriptions returns the descriptions of all issues, in report order.
// Used to fold prior findings into a revision brief as corrective guidance.
func (r *FactCheckReport) IssueDescriptions() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.Description
	}
	return out
}
