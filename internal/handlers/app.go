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
	"github.com/quizforge/quizforge-backend/internal/types"
)

type AppHandler struct {
	log    *logger.Logger
	appSvc services.AppService
}

func NewAppHandler(log *logger.Logger, appSvc services.AppService) *AppHandler {
	return &AppHandler{
		log:    log.With("handler", "AppHandler"),
		appSvc: appSvc,
	}
}

type createAppRequest struct {
	AppName       string              `json:"app_name" binding:"required"`
	AppDesc       string              `json:"app_desc"`
	AppIcon       string              `json:"app_icon"`
	AppType       types.AppType       `json:"app_type"`
	ScoringMethod types.ScoringMethod `json:"scoring_method"`
}

// POST /api/app
func (h *AppHandler) Create(c *gin.Context) {
	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	app, err := h.appSvc.Create(c.Request.Context(), &types.App{
		AppName:       req.AppName,
		AppDesc:       req.AppDesc,
		AppIcon:       req.AppIcon,
		AppType:       req.AppType,
		ScoringMethod: req.ScoringMethod,
	})
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, app)
}

// GET /api/app/:id
func (h *AppHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	app, err := h.appSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, app)
}

// GET /api/app
func (h *AppHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	apps, err := h.appSvc.List(c.Request.Context(), limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, apps)
}

// PUT /api/app/:id
func (h *AppHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	app, err := h.appSvc.Update(c.Request.Context(), &types.App{
		ID:            id,
		AppName:       req.AppName,
		AppDesc:       req.AppDesc,
		AppIcon:       req.AppIcon,
		AppType:       req.AppType,
		ScoringMethod: req.ScoringMethod,
	})
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, app)
}

// DELETE /api/app/:id
func (h *AppHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	if err := h.appSvc.DeleteByID(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
