package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type fakeScoringService struct {
	answer *types.UserAnswer
	err    error
}

func (f *fakeScoringService) Submit(ctx context.Context, appID uuid.UUID, choices []string) (*types.UserAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeScoringService) GetAnswer(ctx context.Context, id uuid.UUID) (*types.UserAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeScoringService) ListAnswers(ctx context.Context, appID uuid.UUID, limit int) ([]*types.UserAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*types.UserAnswer{f.answer}, nil
}

func submitTestRouter(t *testing.T, svc *fakeScoringService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	router := gin.New()
	handler := NewUserAnswerHandler(log, svc)
	router.POST("/api/userAnswer/submit", handler.Submit)
	return router
}

func postSubmit(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/userAnswer/submit", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitReturnsScoredAnswer(t *testing.T) {
	answer := &types.UserAnswer{ID: uuid.New(), ResultName: "winner"}
	router := submitTestRouter(t, &fakeScoringService{answer: answer})

	rec := postSubmit(t, router, gin.H{"app_id": uuid.New(), "choices": []string{"A", "B"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got types.UserAnswer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ResultName != "winner" {
		t.Fatalf("ResultName = %q, want %q", got.ResultName, "winner")
	}
}

func TestSubmitMissingFieldsIsBadRequest(t *testing.T) {
	router := submitTestRouter(t, &fakeScoringService{})

	rec := postSubmit(t, router, gin.H{"choices": []string{"A"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != apierr.CodeParamsError {
		t.Fatalf("code = %q, want %q", envelope.Error.Code, apierr.CodeParamsError)
	}
}

func TestSubmitErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "lock_unavailable_is_503",
			err:        apierr.LockUnavailable(errors.New("busy")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apierr.CodeLockUnavailable,
		},
		{
			name:       "not_found_is_404",
			err:        apierr.NotFound(errors.New("no such app")),
			wantStatus: http.StatusNotFound,
			wantCode:   apierr.CodeNotFound,
		},
		{
			name:       "unclassified_is_500_system",
			err:        errors.New("plain failure"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierr.CodeSystemError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := submitTestRouter(t, &fakeScoringService{err: tc.err})
			rec := postSubmit(t, router, gin.H{"app_id": uuid.New(), "choices": []string{"A"}})
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", envelope.Error.Code, tc.wantCode)
			}
		})
	}
}
