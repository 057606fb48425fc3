package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type QuestionHandler struct {
	log         *logger.Logger
	questionSvc services.QuestionService
	genSvc      services.QuestionGenService
}

func NewQuestionHandler(log *logger.Logger, questionSvc services.QuestionService, genSvc services.QuestionGenService) *QuestionHandler {
	return &QuestionHandler{
		log:         log.With("handler", "QuestionHandler"),
		questionSvc: questionSvc,
		genSvc:      genSvc,
	}
}

type questionRequest struct {
	AppID   uuid.UUID               `json:"app_id" binding:"required"`
	Content []types.QuestionContent `json:"content" binding:"required"`
}

// POST /api/question
func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	question := &types.Question{AppID: req.AppID}
	if err := question.EncodeContent(req.Content); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	created, err := h.questionSvc.Create(c.Request.Context(), question)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, created)
}

// GET /api/question/:id
func (h *QuestionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid question id"))
		return
	}
	question, err := h.questionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, question)
}

// GET /api/question/app/:appId
func (h *QuestionHandler) GetByAppID(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("appId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	question, err := h.questionSvc.GetByAppID(c.Request.Context(), appID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, question)
}

// PUT /api/question/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid question id"))
		return
	}
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	question := &types.Question{ID: id, AppID: req.AppID}
	if err := question.EncodeContent(req.Content); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	updated, err := h.questionSvc.Update(c.Request.Context(), question)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /api/question/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid question id"))
		return
	}
	if err := h.questionSvc.DeleteByID(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

type generateRequest struct {
	AppID         uuid.UUID `json:"app_id" binding:"required"`
	QuestionCount int       `json:"question_count"`
	OptionCount   int       `json:"option_count"`
}

func (r *generateRequest) applyDefaults() {
	if r.QuestionCount == 0 {
		r.QuestionCount = 10
	}
	if r.OptionCount == 0 {
		r.OptionCount = 4
	}
}

// POST /api/question/ai_generate
func (h *QuestionHandler) AIGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, err)
		return
	}
	req.applyDefaults()
	questions, err := h.genSvc.Generate(c.Request.Context(), req.AppID, req.QuestionCount, req.OptionCount)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, questions)
}

// GET /api/question/ai_generate/sse
// Streams one SSE data event per generated question, each carrying the
// question's JSON object as a string payload.
func (h *QuestionHandler) AIGenerateSSE(c *gin.Context) {
	appID, err := uuid.Parse(c.Query("app_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid app id"))
		return
	}
	req := generateRequest{AppID: appID}
	if v := c.Query("question_count"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &req.QuestionCount); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid question count"))
			return
		}
	}
	if v := c.Query("option_count"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &req.OptionCount); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeParamsError, fmt.Errorf("invalid option count"))
			return
		}
	}
	req.applyDefaults()

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		RespondError(c, http.StatusInternalServerError, apierr.CodeSystemError, fmt.Errorf("streaming unsupported"))
		return
	}

	err = h.genSvc.GenerateStream(c.Request.Context(), req.AppID, req.QuestionCount, req.OptionCount, func(object string) error {
		// Each question object travels as a JSON string literal so the
		// client can append raw text before parsing.
		payload, err := json.Marshal(object)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		h.log.Warn("Question stream aborted", "app_id", appID, "error", err)
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", apierr.Code(err))
		flusher.Flush()
		return
	}
	fmt.Fprint(w, "event: done\ndata: [DONE]\n\n")
	flusher.Flush()
}
