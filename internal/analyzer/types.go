package analyzer

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Score tolerates both numeric and quoted-numeric JSON values, which
// models emit interchangeably.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	raw := string(data)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		unquoted = strings.TrimSpace(unquoted)
		if unquoted == "" {
			*s = 0
			return nil
		}
		val, err := strconv.ParseFloat(unquoted, 64)
		if err != nil {
			return err
		}
		*s = Score(val)
		return nil
	}
	var val float64
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	*s = Score(val)
	return nil
}

// DateRange holds free-form start/end dates as they appear on the resume.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type ContactInfo struct {
	Email       string      `json:"email"`
	Mobile      string      `json:"mobile"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"social_links"`
}

type PersonalInfo struct {
	Name                string      `json:"name"`
	ContactInfo         ContactInfo `json:"contact_info"`
	ProfessionalSummary string      `json:"professional_summary"`
}

type Education struct {
	InstituteName      string    `json:"institute_name"`
	Degree             string    `json:"degree"`
	Specialisation     string    `json:"specialisation"`
	Dates              DateRange `json:"dates"`
	Location           string    `json:"location"`
	GPA                string    `json:"gpa"`
	RelevantCoursework []string  `json:"relevant_coursework"`
}

type WorkExperience struct {
	CompanyName  string    `json:"company_name"`
	JobTitle     string    `json:"job_title"`
	Date         DateRange `json:"date"`
	Location     string    `json:"location"`
	BulletPoints []string  `json:"bullet_points"`
}

type Project struct {
	Title            string    `json:"title"`
	ProjectLink      string    `json:"project_link"`
	Date             DateRange `json:"date"`
	Location         string    `json:"location"`
	Organization     string    `json:"organization"`
	BulletPoints     []string  `json:"bullet_points"`
	TechnologiesUsed []string  `json:"technologies_used"`
}

// SkillGroup is a named category of skills, used both for parsed resume
// sections and for dictionary-detected groups.
type SkillGroup struct {
	GroupName string   `json:"skill_group"`
	Skills    []string `json:"skills"`
}

type Achievement struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DateAchieved string `json:"date_achieved"`
	Organization string `json:"organization"`
}

type Certification struct {
	CertificateName     string `json:"certificate_name"`
	IssuingOrganization string `json:"issuing_organization"`
	DateIssued          string `json:"date_issued"`
	ExpiryDate          string `json:"expiry_date"`
	Description         string `json:"description"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Publication struct {
	PublicationName   string   `json:"publication_name"`
	Authors           []string `json:"authors"`
	PublicationDate   string   `json:"publication_date"`
	JournalConference string   `json:"journal_conference"`
	Description       string   `json:"description"`
}

type Extracurricular struct {
	Title            string    `json:"title"`
	OrganizationName string    `json:"organization_name"`
	Role             string    `json:"role"`
	Date             DateRange `json:"date"`
	BulletPoints     []string  `json:"bullet_points"`
	Certificate      string    `json:"certificate"`
	Location         string    `json:"location"`
}

// ResumeDetails is the full structured extraction of a resume.
type ResumeDetails struct {
	PersonalInfo     *PersonalInfo     `json:"personal_info"`
	Educations       []Education       `json:"educations"`
	WorkExperiences  []WorkExperience  `json:"work_experiences"`
	Projects         []Project         `json:"projects"`
	TechnicalSkills  []SkillGroup      `json:"technical_skills"`
	SoftSkills       []SkillGroup      `json:"soft_skills"`
	Achievements     []Achievement     `json:"achievements"`
	Certifications   []Certification   `json:"certifications"`
	Languages        []Language        `json:"languages"`
	Publications     []Publication     `json:"publications"`
	Extracurriculars []Extracurricular `json:"extracurriculars"`
}

// ATSScore carries the four evaluator scores, each out of 100.
type ATSScore struct {
	ATSScore            Score `json:"ats_score"`
	FormatCompliance    Score `json:"format_compliance"`
	KeywordOptimization Score `json:"keyword_optimization"`
	Readability         Score `json:"readability"`
}

// WeightedPoint is an observation with a 0-100 weightage.
type WeightedPoint struct {
	Description string `json:"description"`
	Weightage   Score  `json:"weightage"`
}

type JobFitAssessment struct {
	Score Score  `json:"score"`
	Notes string `json:"notes"`
}

// OverallAnalysis is the comprehensive LLM evaluation of a resume
// against a role. Matched/missing skills are populated during decoding
// but replaced by the local matcher before persistence.
type OverallAnalysis struct {
	OverallStrengths           []WeightedPoint  `json:"overall_strengths"`
	AreasForImprovement        []WeightedPoint  `json:"areas_for_improvement"`
	ATSOptimizationSuggestions []WeightedPoint  `json:"ats_optimization_suggestions"`
	JobFitAssessment           JobFitAssessment `json:"job_fit_assessment"`
	RecommendationScore        Score            `json:"recommendation_score"`
	ResumeSummary              string           `json:"resume_summary"`
	MatchedSkills              []string         `json:"matched_skills,omitempty"`
	MissingSkills              []string         `json:"missing_skills,omitempty"`
}

// SectionDetail is the per-section feedback of a section-wise analysis.
type SectionDetail struct {
	Description   string   `json:"description"`
	Good          []string `json:"good"`
	Bad           []string `json:"bad"`
	Improvements  []string `json:"improvements"`
	OverallReview string   `json:"overall_review"`
}

// SectionWiseAnalysis always carries all five sections.
type SectionWiseAnalysis struct {
	Education       SectionDetail `json:"education"`
	Projects        SectionDetail `json:"projects"`
	Experience      SectionDetail `json:"experience"`
	Skills          SectionDetail `json:"skills"`
	Extracurricular SectionDetail `json:"extracurricular"`
}

// Question is one multiple-choice assessment question.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Topic    string   `json:"topic"`
}

// AssessmentItem is a per-skill tally submitted for scoring.
type AssessmentItem struct {
	Skill            string `json:"skill"`
	TotalQuestions   int    `json:"total_questions"`
	CorrectQuestions int    `json:"correct_questions"`
}

// SkillScore is the computed score of one skill. Score is nil when the
// skill had no questions.
type SkillScore struct {
	Skill string   `json:"skill"`
	Score *float64 `json:"score"`
}

type RoleSuggestion struct {
	RoleName     string `json:"role_name"`
	MatchPercent Score  `json:"match_percent"`
}

type SkillStrength struct {
	Skill         string `json:"skill"`
	StrengthPoint string `json:"strength_point"`
}

type SkillImprovement struct {
	Skill            string `json:"skill"`
	ImprovementPoint string `json:"improvement_point"`
}

// CareerSuggestions is the mentor-style guidance generated from
// assessment scores.
type CareerSuggestions struct {
	Suggestions      []RoleSuggestion   `json:"suggestions"`
	Strengths        []SkillStrength    `json:"strengths"`
	ImprovementAreas []SkillImprovement `json:"improvement_areas"`
	Tips             []string           `json:"tips"`
}

// BulletKind selects the flavor of bullet enhancement.
type BulletKind string

const (
	BulletProject         BulletKind = "project"
	BulletExperience      BulletKind = "experience"
	BulletExtracurricular BulletKind = "extracurricular"
)

// BulletRequest describes one bullet-enhancement call. ProjectName and
// TechStack apply to project bullets; Organisation, Position and
// Location to the other two kinds.
type BulletRequest struct {
	Kind         BulletKind
	ProjectName  string
	TechStack    string
	Organisation string
	Position     string
	Location     string
	Points       []string
}
