// Package prompts builds the LLM prompts used by drafting and fact checking.
package prompts

import (
	"fmt"
	"strings"

	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// categoryAngles describes the editorial angle per category, injected into the
// drafting prompt so the model writes to the right audience.
var categoryAngles = map[models.Category]string{
	models.CategoryMarketInsights:  "data-driven commentary on Singapore residential market trends, transaction volumes, and price movements",
	models.CategoryBuyingGuide:     "practical step-by-step guidance for buyers navigating Singapore property purchases, including stamp duties and loan limits",
	models.CategorySellingGuide:    "practical guidance for owners selling Singapore property, covering timing, SSD implications, and marketing",
	models.CategoryInvestment:      "analysis for property investors, covering rental yield, capital appreciation prospects, and regulatory considerations",
	models.CategoryNeighborhood:    "a resident-level portrait of a Singapore neighborhood: amenities, schools, transport, and character",
	models.CategoryPropertyNews:    "timely reporting on a Singapore property market development or policy change",
	models.CategoryNewLaunchReview: "a balanced review of a specific new launch development, weighing location, pricing, and developer track record",
	models.CategoryLocationGuide:   "an area guide covering connectivity, upcoming developments, and livability of a Singapore location",
}

// DraftingSystem returns the system message for article drafting.
func DraftingSystem() string {
	return `You are a senior property content writer for a Singapore real estate publication.
You write accurate, well-structured articles for buyers, sellers and investors.
Use current Singapore regulations and terminology correctly (ABSD, BSD, SSD, TDSR, LTV, HDB, URA districts 1-28).
Write in clear professional English with properly separated paragraphs and headings.

You must respond with a single JSON object and nothing else. No markdown fences, no commentary.`
}

// Drafting builds the user prompt for drafting an article from a brief.
func Drafting(brief *models.ContentBrief) string {
	var sb strings.Builder

	angle := categoryAngles[brief.Category]
	sb.WriteString(fmt.Sprintf("Write an article in the %s category: %s.\n\n", brief.Category, angle))

	sb.WriteString("## Topic\n")
	sb.WriteString(brief.Topic)
	sb.WriteString("\n\n")

	if brief.PropertyFacts != nil {
		writePropertyFacts(&sb, brief.PropertyFacts)
	}

	if brief.PropertyScore != nil {
		writePropertyScore(&sb, brief.PropertyScore)
	}

	if len(brief.Guidance) > 0 {
		sb.WriteString("## Corrections Required\n")
		sb.WriteString("A previous draft of this article failed review. Address every item below:\n")
		for _, note := range brief.Guidance {
			sb.WriteString("- ")
			sb.WriteString(note)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`## Output Format
Respond with a JSON object exactly matching this schema:
{
  "title": "Article title, 50-70 characters",
  "content": "Full article body, 800-1200 words, with ## section headings",
  "excerpt": "Summary of the article, 150-200 characters",
  "seoTitle": "SEO page title, under 60 characters",
  "seoDescription": "SEO meta description, under 160 characters",
  "seoKeywords": ["keyword", "..."],
  "tags": ["tag", "..."]
}`)

	return sb.String()
}

func writePropertyFacts(sb *strings.Builder, facts *models.PropertyFacts) {
	sb.WriteString("## Development Facts\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", facts.Name))
	sb.WriteString(fmt.Sprintf("- District: %d\n", facts.District))
	sb.WriteString(fmt.Sprintf("- Units: %d\n", facts.UnitCount))
	sb.WriteString(fmt.Sprintf("- Tenure: %s\n", facts.Tenure))
	if facts.AvgPSF > 0 {
		sb.WriteString(fmt.Sprintf("- Average PSF: S$%.0f (district average S$%.0f)\n", facts.AvgPSF, facts.DistrictAvgPSF))
	}
	if facts.GreenMark != "" {
		sb.WriteString(fmt.Sprintf("- Green Mark: %s\n", facts.GreenMark))
	}
	sb.WriteString("Only state figures given above; do not invent transaction data.\n\n")
}

func writePropertyScore(sb *strings.Builder, score *models.PropertyScore) {
	sb.WriteString("## Editorial Rating\n")
	sb.WriteString(fmt.Sprintf("Our computed rating for this development is %d/100 ", score.Overall))
	sb.WriteString(fmt.Sprintf("(location %d, developer %d, value %d, facilities %d, tenure %d).\n",
		score.Breakdown.Location, score.Breakdown.Developer, score.Breakdown.Value,
		score.Breakdown.Facilities, score.Breakdown.Tenure))
	for _, strength := range score.Strengths {
		sb.WriteString(fmt.Sprintf("- Strength: %s\n", strength))
	}
	for _, concern := range score.Concerns {
		sb.WriteString(fmt.Sprintf("- Concern: %s\n", concern))
	}
	sb.WriteString("Cite this rating in the review; do not invent a different score.\n\n")
}
