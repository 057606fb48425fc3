package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type UserAnswerHandler struct {
	log        *logger.Logger
	scoringSvc services.ScoringService
}

func NewUserAnswerHandler(log *logger.Logger, scoringSvc services.ScoringService) *UserAnswerHandler {
	return &UserAnswerHandler{
		log:        log.With("handler", "UserAnswerHandler"),
		scoringSvc: scoringSvc,
	}
}

type submitRequest struct {
	AppID   uuid.UUID `json:"app_id" binding:"required"`
	Choices []string  `json:"choices" binding:"required"`
}

// POST /api/userAnswer/submit
func (h *UserAnswerHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	answer, err := h.scoringSvc.Submit(c.Request.Context(), req.AppID, req.Choices)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, answer)
}

// GET /api/userAnswer/:id
func (h *UserAnswerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid answer id"))
		return
	}
	answer, err := h.scoringSvc.GetAnswer(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, answer)
}

// GET /api/userAnswer/app/:appId
func (h *UserAnswerHandler) ListByAppID(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("appId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	answers, err := h.scoringSvc.ListAnswers(c.Request.Context(), appID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, answers)
}
