package update_policy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/api/middleware"
	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/service/policy"
	"github.com/m04kA/RoomBookingService/internal/service/policy/models"
)

type fakePolicyService struct {
	resp   *models.PolicyResponse
	err    error
	gotReq *models.UpdatePolicyRequest
}

func (f *fakePolicyService) Update(_ context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// doRequest прогоняет запрос через Auth middleware и handler —
// той же цепочкой, что собирается в main.
func doRequest(t *testing.T, svc PolicyService, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})
	protected := middleware.Auth(http.HandlerFunc(h.Handle))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/policy", bytes.NewBufferString(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()

	protected.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_Success(t *testing.T) {
	svc := &fakePolicyService{
		resp: &models.PolicyResponse{
			OpenHour:                9,
			CloseHour:               22,
			TimeSlotIntervalMinutes: 30,
			MinDurationMinutes:      30,
			MaxDurationMinutes:      240,
			MaxActiveBookings:       5,
			MinNoticeMinutes:        60,
			MaxDaysAhead:            30,
			UpdatedAt:               time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := doRequest(t, svc, "7", `{"openHour": 9}`)

	require.Equal(t, http.StatusOK, rec.Code)

	// RequesterID берется из заголовка, а не из тела
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, int64(7), svc.gotReq.RequesterID)
	require.NotNil(t, svc.gotReq.OpenHour)
	assert.Equal(t, 9, *svc.gotReq.OpenHour)
	assert.Nil(t, svc.gotReq.CloseHour)

	var got models.PolicyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 9, got.OpenHour)
	assert.Equal(t, 22, got.CloseHour)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	svc := &fakePolicyService{}

	rec := doRequest(t, svc, "", `{"openHour": 9}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.gotReq, "service must not be called without auth")
}

func TestHandle_MalformedBody(t *testing.T) {
	svc := &fakePolicyService{}

	rec := doRequest(t, svc, "7", `{"openHour": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, domain.CodeInvalidInput, body.Code)
}

// Каждая ошибка валидации политики транслируется в собственный
// стабильный код, по которому матчатся клиенты.
func TestHandle_ValidationCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"hours", policy.ErrInvalidHours, domain.CodeInvalidHours},
		{"slot interval", policy.ErrInvalidTimeSlotInterval, domain.CodeInvalidTimeSlotInterval},
		{"min duration", policy.ErrInvalidMinDuration, domain.CodeInvalidMinDuration},
		{"max duration", policy.ErrInvalidMaxDuration, domain.CodeInvalidMaxDuration},
		{"duration range", policy.ErrInvalidDurationRange, domain.CodeInvalidDurationRange},
		{"max active", policy.ErrInvalidMaxActiveBookings, domain.CodeInvalidMaxActiveBookings},
		{"max consecutive", policy.ErrInvalidMaxConsecutive, domain.CodeInvalidMaxConsecutive},
		{"cooldown", policy.ErrInvalidCooldown, domain.CodeInvalidCooldown},
		{"min notice", policy.ErrInvalidMinNotice, domain.CodeInvalidMinNotice},
		{"max days ahead", policy.ErrInvalidMaxDaysAhead, domain.CodeInvalidMaxDaysAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Сервис возвращает обернутую ошибку — матчинг идет через errors.Is
			svc := &fakePolicyService{err: fmt.Errorf("%w: details", tt.err)}

			rec := doRequest(t, svc, "7", `{"openHour": 25}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeErrorBody(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_AccessDenied(t *testing.T) {
	svc := &fakePolicyService{err: policy.ErrAccessDenied}

	rec := doRequest(t, svc, "7", `{"openHour": 9}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, domain.CodeAccessDenied, body.Code)
}

func TestHandle_EmptyUpdate(t *testing.T) {
	svc := &fakePolicyService{err: policy.ErrInvalidInput}

	rec := doRequest(t, svc, "7", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, domain.CodeInvalidInput, body.Code)
}

func TestHandle_InternalError(t *testing.T) {
	svc := &fakePolicyService{err: errors.New("db down")}

	rec := doRequest(t, svc, "7", `{"openHour": 9}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, domain.CodeInternalError, body.Code)
}
