package prompts

import (
	"strings"

	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// FactCheckSystem returns the system message for the semantic fact check.
func FactCheckSystem() string {
	return `You are a fact checker for a Singapore property publication.
You evaluate draft articles for factual plausibility against the current regulatory environment:
- ABSD, BSD, SSD rates and LTV limits as currently in force
- URA postal district numbering (districts 1-28) and correct district-area pairings
- Correct use of local terminology (HDB, EC, CPF, TOP, en bloc, PSF)
Do not penalize style or opinion; only factual accuracy and plausibility.

You must respond with a single JSON object and nothing else.`
}

// FactCheck builds the user prompt for semantically checking a draft.
func FactCheck(draft *models.Draft) string {
	var sb strings.Builder

	sb.WriteString("Evaluate the factual accuracy of this draft article.\n\n")
	sb.WriteString("## Title\n")
	sb.WriteString(draft.Title)
	sb.WriteString("\n\n## Body\n")
	sb.WriteString(draft.Content)
	sb.WriteString("\n\n")

	sb.WriteString(`## Output Format
Respond with a JSON object exactly matching this schema:
{
  "accuracy_score": 0-100,
  "issues": [
    {"description": "specific factual problem", "severity": "minor" | "major" | "critical"}
  ],
  "claims_to_verify": ["specific numeric or regulatory claim worth double-checking"]
}
Score 100 means no factual concerns. Deduct in proportion to severity and count of problems.`)

	return sb.String()
}
