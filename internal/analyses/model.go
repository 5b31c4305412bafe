package analyses

import (
	"time"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
)

// LLMAnalysis bundles the two generated evaluations of a resume.
type LLMAnalysis struct {
	OverallAnalysis     analyzer.OverallAnalysis     `json:"overall_analysis"`
	SectionWiseAnalysis analyzer.SectionWiseAnalysis `json:"section_wise_analysis"`
}

// Analysis is one immutable analysis run of a resume against a role.
// Records are only ever created and deleted, never updated in place.
type Analysis struct {
	ID                string                `json:"id"`
	UserID            string                `json:"userId"`
	ResumeID          string                `json:"resumeId"`
	ATSScore          analyzer.ATSScore     `json:"ats_score"`
	JobMatchScore     float64               `json:"job_match_score"`
	SkillMatchPercent float64               `json:"skill_match_percent"`
	MatchedSkills     []string              `json:"matched_skills"`
	MissingSkills     []string              `json:"missing_skills"`
	TechnicalSkills   []analyzer.SkillGroup `json:"technical_skills"`
	SoftSkills        []analyzer.SkillGroup `json:"soft_skills"`
	LLMAnalysis       LLMAnalysis           `json:"llm_analysis"`
	JobTitle          string                `json:"job_title"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// ResumeMetadata is the resume projection joined onto an analysis.
type ResumeMetadata struct {
	ResumeName string `json:"resume_name"`
	IsPrimary  bool   `json:"is_primary"`
}

// WithMetadata is an analysis plus the metadata of its resume, which is
// nil when the resume has since been deleted.
type WithMetadata struct {
	Analysis
	ResumeMetadata *ResumeMetadata `json:"resume_metadata"`
}
