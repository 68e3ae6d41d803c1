package coverletters

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

// RegisterRoutes attaches cover letter routes. generate wraps the POST
// route, typically with the generation rate limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generate ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, generate...), h.create)
	rg.POST("/cover-letters", handlers...)
	rg.GET("/cover-letters", h.list)
	rg.GET("/cover-letters/:id", h.get)
	rg.DELETE("/cover-letters/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	letter, err := h.Svc.Generate(c.Request.Context(), middleware.SubjectFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to generate cover letter")
		return
	}
	middleware.MarkGeneration(c, letter.Source)
	respond.Created(c, letter)
}

func (h *Handler) list(c *gin.Context) {
	letters, err := h.Svc.List(c.Request.Context(), middleware.SubjectFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list cover letters")
		return
	}
	respond.OK(c, gin.H{"items": letters})
}

func (h *Handler) get(c *gin.Context) {
	letter, err := h.Svc.Get(c.Request.Context(), middleware.SubjectFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to load cover letter")
		return
	}
	respond.OK(c, letter)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.SubjectFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete cover letter")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMessage, nil)
	}
}
