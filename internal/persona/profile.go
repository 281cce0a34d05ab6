// Package persona turns a free-text persona and job description into the
// structured profile the ranker consumes.
package persona

// Technical levels recognised by the ranker. Any other value is treated as
// unknown and scored neutrally.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Profile is the structured view of a persona and its job-to-be-done.
type Profile struct {
	Role           string   `json:"role"`
	ExpertiseAreas []string `json:"expertise_areas"`
	FocusKeywords  []string `json:"focus_keywords"` // Unique, sorted
	DomainTags     []string `json:"domain_tags"`
	JobObjectives  []string `json:"job_objectives"`
	TechnicalLevel string   `json:"technical_level"`
}
