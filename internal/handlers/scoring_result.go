package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type ScoringResultHandler struct {
	log       *logger.Logger
	resultSvc services.ScoringResultService
}

func NewScoringResultHandler(log *logger.Logger, resultSvc services.ScoringResultService) *ScoringResultHandler {
	return &ScoringResultHandler{
		log:       log.With("handler", "ScoringResultHandler"),
		resultSvc: resultSvc,
	}
}

type scoringResultRequest struct {
	AppID            uuid.UUID `json:"app_id" binding:"required"`
	ResultName       string    `json:"result_name" binding:"required"`
	ResultDesc       string    `json:"result_desc"`
	ResultPicture    string    `json:"result_picture"`
	ResultProp       []string  `json:"result_prop"`
	ResultScoreRange int       `json:"result_score_range"`
}

func (r *scoringResultRequest) toModel() (*types.ScoringResult, error) {
	result := &types.ScoringResult{
		AppID:            r.AppID,
		ResultName:       r.ResultName,
		ResultDesc:       r.ResultDesc,
		ResultPicture:    r.ResultPicture,
		ResultScoreRange: r.ResultScoreRange,
	}
	if len(r.ResultProp) > 0 {
		raw, err := json.Marshal(r.ResultProp)
		if err != nil {
			return nil, err
		}
		result.ResultProp = datatypes.JSON(raw)
	}
	return result, nil
}

// POST /api/scoringResult
func (h *ScoringResultHandler) Create(c *gin.Context) {
	var req scoringResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	result, err := req.toModel()
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	created, err := h.resultSvc.Create(c.Request.Context(), result)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, created)
}

// GET /api/scoringResult/app/:appId
func (h *ScoringResultHandler) ListByAppID(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("appId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	results, err := h.resultSvc.ListByAppID(c.Request.Context(), appID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, results)
}

// PUT /api/scoringResult/:id
func (h *ScoringResultHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid scoring result id"))
		return
	}
	var req scoringResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	result, err := req.toModel()
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	result.ID = id
	updated, err := h.resultSvc.Update(c.Request.Context(), result)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /api/scoringResult/:id
func (h *ScoringResultHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid scoring result id"))
		return
	}
	if err := h.resultSvc.DeleteByID(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
