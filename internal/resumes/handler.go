package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
	"github.com/Shoyeb45/resume-analyzer/internal/extract"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/middleware"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/respond"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/validation"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the resumes service.
type Handler struct {
	Svc   *Service
	valid *validation.Validator
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, valid: validation.New()}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/analyse", h.analyse)
	rg.POST("/resume", h.upload)
	rg.GET("/resume", h.list)
	rg.GET("/resume/search", h.search)
	rg.GET("/resume/analytics", h.analytics)
	rg.GET("/resume/:id", h.get)
	rg.PATCH("/resume", h.upsert)
	rg.DELETE("/resume/:id", h.delete)

	rg.POST("/resume/skill-assessment", h.skillAssessment)
	rg.POST("/resume/skill-assessment-score", h.skillAssessmentScore)
	rg.POST("/resume/project", h.projectBullets)
	rg.POST("/resume/experience", h.experienceBullets)
	rg.POST("/resume/extracurricular", h.extracurricularBullets)
	rg.POST("/resume/ats-score", h.atsScore)
	rg.POST("/resume/improve-section", h.improveSection)
	rg.POST("/resume/generate", h.generate)
}

func (h *Handler) analyse(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileName, data, ok := readUpload(c, "resume_file")
	if !ok {
		return
	}
	jobDescription := strings.TrimSpace(c.PostForm("job_description"))
	jobTitle := strings.TrimSpace(c.PostForm("job_title"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_description is required", nil)
		return
	}
	if jobTitle == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_title is required", nil)
		return
	}

	result, err := h.Svc.AnalyzeResume(c.Request.Context(), userID, fileName, data, jobTitle, jobDescription)
	if err != nil {
		respondPipelineError(c, err, "failed to analyse resume")
		return
	}

	respond.OK(c, result)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileName, data, ok := readUpload(c, "resume_file")
	if !ok {
		return
	}

	resume, err := h.Svc.ExtractResume(c.Request.Context(), userID, fileName, data)
	if err != nil {
		respondPipelineError(c, err, "failed to extract resume")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"resume": resume})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resumes, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resumes", nil)
		return
	}
	if resumes == nil {
		resumes = []Resume{}
	}

	respond.OK(c, gin.H{"resumes": resumes})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondResumeError(c, err, "failed to fetch resume")
		return
	}

	respond.OK(c, gin.H{"resume": resume})
}

type upsertRequest struct {
	ResumeID   string                 `json:"resume_id"`
	ResumeName string                 `json:"resume_name" validate:"required"`
	IsPrimary  bool                   `json:"is_primary"`
	Details    analyzer.ResumeDetails `json:"resume_details"`
}

func (h *Handler) upsert(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if details, err := h.valid.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", details)
		return
	}

	resume, err := h.Svc.Upsert(c.Request.Context(), userID, req.ResumeID, req.ResumeName, req.IsPrimary, req.Details)
	if err != nil {
		respondResumeError(c, err, "failed to save resume")
		return
	}

	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondResumeError(c, err, "failed to delete resume")
		return
	}

	respond.OK(c, gin.H{"message": "resume deleted"})
}

func (h *Handler) search(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filters := SearchFilters{
		Keywords:  splitQuery(c.Query("keywords")),
		Skills:    splitQuery(c.Query("skills")),
		Companies: splitQuery(c.Query("companies")),
	}
	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "min_score must be a number", nil)
			return
		}
		filters.MinScore = &minScore
	}
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	resumes, err := h.Svc.Search(c.Request.Context(), userID, filters, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search resumes", nil)
		return
	}
	if resumes == nil {
		resumes = []Resume{}
	}

	respond.OK(c, gin.H{"resumes": resumes})
}

func (h *Handler) analytics(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	analytics, err := h.Svc.Analytics(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics", nil)
		return
	}

	respond.OK(c, analytics)
}

func (h *Handler) skillAssessment(c *gin.Context) {
	technical := strings.TrimSpace(c.PostForm("technical_skills"))
	soft := strings.TrimSpace(c.PostForm("soft_skills"))
	if technical == "" && soft == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "technical_skills or soft_skills is required", nil)
		return
	}

	questions, err := h.Svc.Analyzer.GenerateAssessment(c.Request.Context(), technical, soft)
	if err != nil {
		respondPipelineError(c, err, "failed to generate assessment")
		return
	}

	respond.OK(c, gin.H{"questions": questions})
}

func (h *Handler) skillAssessmentScore(c *gin.Context) {
	raw := c.PostForm("skills")
	if strings.TrimSpace(raw) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills is required", nil)
		return
	}
	var items []analyzer.AssessmentItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills must be a JSON array", nil)
		return
	}

	overall, perSkill := analyzer.ScoreAssessment(items)

	suggestions, err := h.Svc.Analyzer.SuggestCareers(c.Request.Context(), perSkill, overall)
	if err != nil {
		respondPipelineError(c, err, "failed to generate career suggestions")
		return
	}

	respond.OK(c, gin.H{
		"overall_score":      overall,
		"skill_scores":       perSkill,
		"career_suggestions": suggestions,
	})
}

func (h *Handler) projectBullets(c *gin.Context) {
	req := analyzer.BulletRequest{
		Kind:        analyzer.BulletProject,
		ProjectName: strings.TrimSpace(c.PostForm("project_name")),
		TechStack:   strings.TrimSpace(c.PostForm("tech_stack")),
		Points:      c.PostFormArray("bullet_points"),
	}
	if req.ProjectName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "project_name is required", nil)
		return
	}
	h.enhanceBullets(c, req)
}

func (h *Handler) experienceBullets(c *gin.Context) {
	req, ok := organisationBulletRequest(c, analyzer.BulletExperience)
	if !ok {
		return
	}
	h.enhanceBullets(c, req)
}

func (h *Handler) extracurricularBullets(c *gin.Context) {
	req, ok := organisationBulletRequest(c, analyzer.BulletExtracurricular)
	if !ok {
		return
	}
	h.enhanceBullets(c, req)
}

func organisationBulletRequest(c *gin.Context, kind analyzer.BulletKind) (analyzer.BulletRequest, bool) {
	req := analyzer.BulletRequest{
		Kind:         kind,
		Organisation: strings.TrimSpace(c.PostForm("organisation_name")),
		Position:     strings.TrimSpace(c.PostForm("position")),
		Location:     strings.TrimSpace(c.PostForm("location")),
		Points:       c.PostFormArray("bullet_points"),
	}
	if req.Organisation == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "organisation_name is required", nil)
		return analyzer.BulletRequest{}, false
	}
	return req, true
}

func (h *Handler) enhanceBullets(c *gin.Context, req analyzer.BulletRequest) {
	points, err := h.Svc.Analyzer.EnhanceBullets(c.Request.Context(), req)
	if err != nil {
		respondPipelineError(c, err, "failed to enhance bullet points")
		return
	}
	respond.OK(c, gin.H{"bullet_points": points})
}

func (h *Handler) atsScore(c *gin.Context) {
	raw := c.PostForm("resume_json")
	if strings.TrimSpace(raw) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_json is required", nil)
		return
	}
	var details analyzer.ResumeDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_json must be a JSON object", nil)
		return
	}

	score, err := h.Svc.Analyzer.ScoreResumeData(c.Request.Context(), details)
	if err != nil {
		respondPipelineError(c, err, "failed to score resume")
		return
	}

	respond.OK(c, gin.H{"ats_score": score})
}

func (h *Handler) improveSection(c *gin.Context) {
	sectionText := strings.TrimSpace(c.PostForm("section_text"))
	sectionName := strings.TrimSpace(c.PostForm("section_name"))
	if sectionText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "section_text is required", nil)
		return
	}
	if sectionName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "section_name is required", nil)
		return
	}

	improved, err := h.Svc.Analyzer.ImproveSection(
		c.Request.Context(),
		sectionText,
		sectionName,
		strings.TrimSpace(c.PostForm("target_role")),
		strings.TrimSpace(c.PostForm("job_description")),
	)
	if err != nil {
		respondPipelineError(c, err, "failed to improve section")
		return
	}

	respond.OK(c, gin.H{"improved_section": improved})
}

type generateRequest struct {
	Sections       map[string][]string `json:"sections" validate:"required,min=1"`
	TargetRole     string              `json:"target_role"`
	JobDescription string              `json:"job_description"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if details, err := h.valid.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", details)
		return
	}

	generated, err := h.Svc.Analyzer.GenerateResume(c.Request.Context(), req.Sections, req.TargetRole, req.JobDescription)
	if err != nil {
		respondPipelineError(c, err, "failed to generate resume")
		return
	}

	respond.OK(c, gin.H{"resume": generated})
}

func readUpload(c *gin.Context, field string) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", field+" is required", nil)
		return "", nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

func respondResumeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrUnauthorized):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "resume does not belong to user", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func respondPipelineError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type; upload pdf, docx or txt", nil)
	case errors.Is(err, extract.ErrScannedPDF):
		respond.Error(c, http.StatusBadRequest, "validation_error", "pdf has no extractable text", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, analyzer.ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "llm_unavailable", "language model request failed", nil)
	case errors.Is(err, analyzer.ErrBadResponse):
		respond.Error(c, http.StatusBadGateway, "llm_bad_response", "language model returned an unusable response", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func splitQuery(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
