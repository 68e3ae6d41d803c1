package insights

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

// RegisterRoutes attaches the insights route. The read may generate on
// first use, so it accepts the generation middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generate ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, generate...), h.get)
	rg.GET("/insights", handlers...)
}

func (h *Handler) get(c *gin.Context) {
	insight, err := h.Svc.GetForUser(c.Request.Context(), middleware.SubjectFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
		case errors.Is(err, ErrProfileIncomplete):
			respond.Error(c, http.StatusConflict, "profile_incomplete", "set your industry before requesting insights", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load industry insights", nil)
		}
		return
	}
	middleware.MarkGeneration(c, insight.Source)
	respond.OK(c, insight)
}
