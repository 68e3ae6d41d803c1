package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach-backend/internal/shared/server/middleware"
	"career-coach-backend/internal/shared/server/respond"
	"career-coach-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes. generate wraps the routes that
// may call the provider.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generate ...gin.HandlerFunc) {
	group := rg.Group("/interviews")
	group.POST("/quiz", append(append([]gin.HandlerFunc{}, generate...), h.quiz)...)
	group.POST("/assessments", append(append([]gin.HandlerFunc{}, generate...), h.saveResult)...)
	group.GET("/assessments", h.list)
}

func (h *Handler) quiz(c *gin.Context) {
	quiz, err := h.Svc.GenerateQuiz(c.Request.Context(), middleware.SubjectFromContext(c))
	if err != nil {
		writeError(c, err, "failed to generate quiz")
		return
	}
	middleware.MarkGeneration(c, quiz.Source)
	respond.OK(c, quiz)
}

func (h *Handler) saveResult(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	assessment, err := h.Svc.SaveResult(c.Request.Context(), middleware.SubjectFromContext(c), sub)
	if err != nil {
		writeError(c, err, "failed to save quiz result")
		return
	}
	respond.Created(c, assessment)
}

func (h *Handler) list(c *gin.Context) {
	assessments, err := h.Svc.ListAssessments(c.Request.Context(), middleware.SubjectFromContext(c))
	if err != nil {
		writeError(c, err, "failed to fetch assessments")
		return
	}
	respond.OK(c, gin.H{"items": assessments})
}

func writeError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMessage, nil)
	}
}
