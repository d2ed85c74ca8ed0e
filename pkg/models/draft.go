package models

// Draft is an unverified candidate article produced by the drafting stage.
// A draft is only ever replaced wholesale on revision, never patched in place.
type Draft struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Excerpt        string   `json:"excerpt"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	SEOKeywords    []string `json:"seoKeywords"`
	Tags           []string `json:"tags"`
	Category       Category `json:"category"`
}
