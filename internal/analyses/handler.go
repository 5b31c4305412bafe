package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/middleware"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches analysis history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/latest-analysis", h.latest)
	rg.GET("/resume/resume-analysis", h.list)
	rg.GET("/resume/resume-analysis/:id", h.get)
	rg.DELETE("/resume/resume-analysis/:id", h.delete)
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	item, err := h.Repo.Latest(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no resume analysis found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch latest analysis", nil)
		}
		return
	}

	respond.OK(c, toLatestResponse(item))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume analyses", nil)
		return
	}
	if items == nil {
		items = []WithMetadata{}
	}

	respond.OK(c, gin.H{"resume_analysis": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	item, err := h.Repo.GetByID(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume analysis", nil)
		}
		return
	}

	respond.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), userID, analysisID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume analysis", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "resume analysis deleted"})
}

// toLatestResponse flattens the grouped skills into plain lists, which
// is what the dashboard consumes.
func toLatestResponse(item WithMetadata) gin.H {
	return gin.H{
		"id":                  item.ID,
		"resume_id":           item.ResumeID,
		"resume_metadata":     item.ResumeMetadata,
		"ats_score":           item.ATSScore,
		"job_match_score":     item.JobMatchScore,
		"skill_match_percent": item.SkillMatchPercent,
		"matched_skills":      item.MatchedSkills,
		"missing_skills":      item.MissingSkills,
		"technical_skills":    flattenGroups(item.TechnicalSkills),
		"soft_skills":         flattenGroups(item.SoftSkills),
		"llm_analysis":        item.LLMAnalysis,
		"job_title":           item.JobTitle,
		"updatedAt":           item.UpdatedAt,
	}
}

func flattenGroups(groups []analyzer.SkillGroup) []string {
	flat := []string{}
	for _, group := range groups {
		flat = append(flat, group.Skills...)
	}
	return flat
}
