package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Shoyeb45/resume-analyzer/internal/llm"
)

var (
	// ErrUpstream wraps transport or provider failures.
	ErrUpstream = errors.New("llm request failed")
	// ErrBadResponse wraps responses that could not be decoded into the
	// expected shape.
	ErrBadResponse = errors.New("malformed llm response")
)

// Analyzer runs all LLM-backed resume operations through one client.
type Analyzer struct {
	client llm.Client
}

// New constructs an Analyzer around the given client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

func (a *Analyzer) chatJSON(ctx context.Context, op, system, user string, out any) error {
	raw, err := a.client.Chat(ctx, system, user)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}
	if err := llm.RecoverInto(raw, out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrBadResponse, err)
	}
	return nil
}

// ParseResume extracts the full structured resume from raw text.
func (a *Analyzer) ParseResume(ctx context.Context, text string) (ResumeDetails, error) {
	system, user := parserPrompt(text)
	var envelope struct {
		ResumeDetails ResumeDetails `json:"resume_details"`
	}
	if err := a.chatJSON(ctx, "parse resume", system, user, &envelope); err != nil {
		return ResumeDetails{}, err
	}
	details := envelope.ResumeDetails
	normalizeDetails(&details)
	return details, nil
}

// ScoreResume rates raw resume text for a target role.
func (a *Analyzer) ScoreResume(ctx context.Context, text, targetRole, jobDescription string) (ATSScore, error) {
	system, user := scoringPrompt(text, targetRole, jobDescription)
	var score ATSScore
	if err := a.chatJSON(ctx, "score resume", system, user, &score); err != nil {
		return ATSScore{}, err
	}
	return score, nil
}

// ScoreResumeData rates an already-structured resume.
func (a *Analyzer) ScoreResumeData(ctx context.Context, details ResumeDetails) (ATSScore, error) {
	system, user := structuredATSPrompt(details)
	var score ATSScore
	if err := a.chatJSON(ctx, "score resume data", system, user, &score); err != nil {
		return ATSScore{}, err
	}
	return score, nil
}

// AnalyzeOverall produces the comprehensive role-fit evaluation.
func (a *Analyzer) AnalyzeOverall(ctx context.Context, text, targetRole, jobDescription string) (OverallAnalysis, error) {
	system, user := analysisPrompt(text, targetRole, jobDescription)
	var analysis OverallAnalysis
	if err := a.chatJSON(ctx, "analyze overall", system, user, &analysis); err != nil {
		return OverallAnalysis{}, err
	}
	if analysis.OverallStrengths == nil {
		analysis.OverallStrengths = []WeightedPoint{}
	}
	if analysis.AreasForImprovement == nil {
		analysis.AreasForImprovement = []WeightedPoint{}
	}
	if analysis.ATSOptimizationSuggestions == nil {
		analysis.ATSOptimizationSuggestions = []WeightedPoint{}
	}
	return analysis, nil
}

const reviewNeedsImprovement = "Needs Improvement"

// AnalyzeSections produces per-section feedback. All five sections are
// always present in the result, with absent ones normalized to empty
// arrays and a "Needs Improvement" review.
func (a *Analyzer) AnalyzeSections(ctx context.Context, text, targetRole, jobDescription string) (SectionWiseAnalysis, error) {
	system, user := sectionPrompt(text, targetRole, jobDescription)
	var analysis SectionWiseAnalysis
	if err := a.chatJSON(ctx, "analyze sections", system, user, &analysis); err != nil {
		return SectionWiseAnalysis{}, err
	}
	for _, section := range []*SectionDetail{
		&analysis.Education, &analysis.Projects, &analysis.Experience,
		&analysis.Skills, &analysis.Extracurricular,
	} {
		normalizeSection(section)
	}
	return analysis, nil
}

func normalizeSection(s *SectionDetail) {
	if s.Good == nil {
		s.Good = []string{}
	}
	if s.Bad == nil {
		s.Bad = []string{}
	}
	if s.Improvements == nil {
		s.Improvements = []string{}
	}
	switch s.OverallReview {
	case "Excellent", "Good", reviewNeedsImprovement:
	default:
		s.OverallReview = reviewNeedsImprovement
	}
}

// EnhanceBullets rewrites bullet points for a project, experience, or
// extracurricular entry. The result has exactly len(req.Points) entries
// (one when no points were given); extra model output is truncated and
// a short reply is an error.
func (a *Analyzer) EnhanceBullets(ctx context.Context, req BulletRequest) ([]string, error) {
	var system, user string
	switch req.Kind {
	case BulletProject:
		system, user = projectBulletPrompt(req.ProjectName, req.TechStack, req.Points)
	case BulletExperience:
		system, user = experienceBulletPrompt(req.Organisation, req.Position, req.Location, req.Points)
	case BulletExtracurricular:
		system, user = extracurricularBulletPrompt(req.Organisation, req.Position, req.Location, req.Points)
	default:
		return nil, fmt.Errorf("unknown bullet kind: %q", req.Kind)
	}

	var out struct {
		BulletPoints []string `json:"bullet_points"`
	}
	if err := a.chatJSON(ctx, "enhance bullets", system, user, &out); err != nil {
		return nil, err
	}

	points := make([]string, 0, len(out.BulletPoints))
	for _, p := range out.BulletPoints {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			points = append(points, trimmed)
		}
	}
	want := bulletCount(req.Points)
	if len(points) < want {
		return nil, fmt.Errorf("enhance bullets: %w: got %d bullet points, want %d", ErrBadResponse, len(points), want)
	}
	return points[:want], nil
}

// GenerateAssessment produces multiple-choice questions covering the
// given comma-separated skill lists.
func (a *Analyzer) GenerateAssessment(ctx context.Context, technicalSkills, softSkills string) ([]Question, error) {
	system, user := skillAssessmentPrompt(technicalSkills, softSkills)
	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := a.chatJSON(ctx, "generate assessment", system, user, &out); err != nil {
		return nil, err
	}
	if len(out.Questions) == 0 {
		return nil, fmt.Errorf("generate assessment: %w: no questions returned", ErrBadResponse)
	}
	for i, q := range out.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("generate assessment: %w: question %d incomplete", ErrBadResponse, i+1)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("generate assessment: %w: question %d has %d options, want 4", ErrBadResponse, i+1, len(q.Options))
		}
	}
	return out.Questions, nil
}

// SuggestCareers generates career guidance from assessment scores.
func (a *Analyzer) SuggestCareers(ctx context.Context, perSkill []SkillScore, overall float64) (CareerSuggestions, error) {
	system, user := careerSuggestionPrompt(perSkill, overall)
	var suggestions CareerSuggestions
	if err := a.chatJSON(ctx, "suggest careers", system, user, &suggestions); err != nil {
		return CareerSuggestions{}, err
	}
	if suggestions.Suggestions == nil {
		suggestions.Suggestions = []RoleSuggestion{}
	}
	if suggestions.Strengths == nil {
		suggestions.Strengths = []SkillStrength{}
	}
	if suggestions.ImprovementAreas == nil {
		suggestions.ImprovementAreas = []SkillImprovement{}
	}
	if suggestions.Tips == nil {
		suggestions.Tips = []string{}
	}
	return suggestions, nil
}

// ImproveSection returns a rewritten version of one resume section.
// The output is free text, not JSON.
func (a *Analyzer) ImproveSection(ctx context.Context, sectionText, sectionName, targetRole, jobDescription string) (string, error) {
	system, user := improvementPrompt(sectionText, sectionName, targetRole, jobDescription)
	improved, err := a.client.Chat(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("improve section: %w: %w", ErrUpstream, err)
	}
	return strings.TrimSpace(improved), nil
}

// GenerateResume produces a complete rewritten resume as free text.
func (a *Analyzer) GenerateResume(ctx context.Context, sections map[string][]string, targetRole, jobDescription string) (string, error) {
	system, user := generationPrompt(sectionsSummary(sections), targetRole, jobDescription)
	generated, err := a.client.Chat(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("generate resume: %w: %w", ErrUpstream, err)
	}
	return strings.TrimSpace(generated), nil
}

// sectionsSummary compacts section content to the first three entries
// per section to keep prompts short.
func sectionsSummary(sections map[string][]string) string {
	names := make([]string, 0, len(sections))
	for section := range sections {
		names = append(names, section)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, section := range names {
		content := sections[section]
		if len(content) == 0 {
			continue
		}
		head := content
		if len(head) > 3 {
			head = head[:3]
		}
		fmt.Fprintf(&b, "%s: %s\n", capitalize(section), strings.Join(head, "; "))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func normalizeDetails(d *ResumeDetails) {
	if d.Educations == nil {
		d.Educations = []Education{}
	}
	if d.WorkExperiences == nil {
		d.WorkExperiences = []WorkExperience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.TechnicalSkills == nil {
		d.TechnicalSkills = []SkillGroup{}
	}
	if d.SoftSkills == nil {
		d.SoftSkills = []SkillGroup{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Languages == nil {
		d.Languages = []Language{}
	}
	if d.Publications == nil {
		d.Publications = []Publication{}
	}
	if d.Extracurriculars == nil {
		d.Extracurriculars = []Extracurricular{}
	}
}
