package resumes

import (
	"encoding/json"
	"time"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
)

// Skills groups the two parsed skill families of a resume.
type Skills struct {
	TechnicalSkills []analyzer.SkillGroup `json:"technical_skills"`
	SoftSkills      []analyzer.SkillGroup `json:"soft_skills"`
}

// Resume is the stored structured resume for a user.
type Resume struct {
	ID               string                     `json:"id"`
	UserID           string                     `json:"userId"`
	ResumeName       string                     `json:"resumeName"`
	IsPrimary        bool                       `json:"isPrimary"`
	PersonalInfo     *analyzer.PersonalInfo     `json:"personal_info"`
	Educations       []analyzer.Education       `json:"educations"`
	WorkExperiences  []analyzer.WorkExperience  `json:"work_experiences"`
	Projects         []analyzer.Project         `json:"projects"`
	Skills           Skills                     `json:"skills"`
	Achievements     []analyzer.Achievement     `json:"achievements"`
	Certifications   []analyzer.Certification   `json:"certifications"`
	Languages        []analyzer.Language        `json:"languages"`
	Publications     []analyzer.Publication     `json:"publications"`
	Extracurriculars []analyzer.Extracurricular `json:"extracurriculars"`
	Keywords         []string                   `json:"keywords"`
	ATSScore         *float64                   `json:"atsScore,omitempty"`
	LastAnalyzed     *time.Time                 `json:"lastAnalyzed,omitempty"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

// Details reassembles the analyzer-shaped view of a stored resume.
func (r Resume) Details() analyzer.ResumeDetails {
	return analyzer.ResumeDetails{
		PersonalInfo:     r.PersonalInfo,
		Educations:       r.Educations,
		WorkExperiences:  r.WorkExperiences,
		Projects:         r.Projects,
		TechnicalSkills:  r.Skills.TechnicalSkills,
		SoftSkills:       r.Skills.SoftSkills,
		Achievements:     r.Achievements,
		Certifications:   r.Certifications,
		Languages:        r.Languages,
		Publications:     r.Publications,
		Extracurriculars: r.Extracurriculars,
	}
}

// ApplyDetails copies parsed resume sections onto the record, dropping
// items with no meaningful content and deriving the keyword list from
// the parsed skill groups.
func (r *Resume) ApplyDetails(details analyzer.ResumeDetails) {
	if details.PersonalInfo != nil && hasContent(*details.PersonalInfo) {
		r.PersonalInfo = details.PersonalInfo
	} else {
		r.PersonalInfo = nil
	}
	r.Educations = filterMeaningful(details.Educations)
	r.WorkExperiences = filterMeaningful(details.WorkExperiences)
	r.Projects = filterMeaningful(details.Projects)
	r.Skills = Skills{
		TechnicalSkills: filterMeaningful(details.TechnicalSkills),
		SoftSkills:      filterMeaningful(details.SoftSkills),
	}
	r.Achievements = filterMeaningful(details.Achievements)
	r.Certifications = filterMeaningful(details.Certifications)
	r.Languages = filterMeaningful(details.Languages)
	r.Publications = filterMeaningful(details.Publications)
	r.Extracurriculars = filterMeaningful(details.Extracurriculars)
	r.Keywords = keywordsFromSkills(r.Skills)
}

func keywordsFromSkills(skills Skills) []string {
	keywords := []string{}
	seen := map[string]bool{}
	for _, group := range skills.TechnicalSkills {
		for _, skill := range group.Skills {
			if skill != "" && !seen[skill] {
				seen[skill] = true
				keywords = append(keywords, skill)
			}
		}
	}
	for _, group := range skills.SoftSkills {
		for _, skill := range group.Skills {
			if skill != "" && !seen[skill] {
				seen[skill] = true
				keywords = append(keywords, skill)
			}
		}
	}
	return keywords
}

func filterMeaningful[T any](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if hasContent(item) {
			out = append(out, item)
		}
	}
	return out
}

// hasContent reports whether any field of the item, at any depth,
// carries a non-zero value. Models routinely emit section items with
// every field empty; those are noise and never stored.
func hasContent(item any) bool {
	raw, err := json.Marshal(item)
	if err != nil {
		return true
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return true
	}
	return nonEmpty(decoded)
}

func nonEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	case []any:
		for _, item := range val {
			if nonEmpty(item) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, item := range val {
			if nonEmpty(item) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
