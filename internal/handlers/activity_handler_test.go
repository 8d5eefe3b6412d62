// internal/handlers/activity_handler_test.go
package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tymelyne_backend/internal/handlers"
	"tymelyne_backend/internal/model"

	svc_mocks "tymelyne_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestActivityHandler(mockService *svc_mocks.ActivityService) *handlers.ActivityHandler {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.NewActivityHandler(mockService, testLogger)
}

// --- Test CompleteActivity ---
func TestActivityHandler_CompleteActivity(t *testing.T) {
	mockService := new(svc_mocks.ActivityService)
	handler := setupTestActivityHandler(mockService)

	testUserID := uuid.New()
	testActivityID := uuid.New()

	tests := []struct {
		name           string
		activityIDStr  string
		body           interface{}
		withAuth       bool
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "正常系: 初回完了",
			activityIDStr: testActivityID.String(),
			body:          map[string]int{"time_spent": 120},
			withAuth:      true,
			setupMock: func() {
				resp := &model.CompleteActivityResponse{
					Message:        "アクティビティを完了しました。",
					XPEarned:       25,
					CurrentLevel:   1,
					CurrentXP:      25,
					CourseProgress: 25,
				}
				mockService.On("CompleteActivity", mock.Anything, testUserID, testActivityID, mock.MatchedBy(func(req *model.CompleteActivityRequest) bool {
					return req.TimeSpent == 120
				})).Return(resp, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"xp_earned":25`,
		},
		{
			name:          "正常系: ボディなしの完了リクエスト",
			activityIDStr: testActivityID.String(),
			body:          nil,
			withAuth:      true,
			setupMock: func() {
				resp := &model.CompleteActivityResponse{
					Message:          "このアクティビティは既に完了しています。",
					AlreadyCompleted: true,
				}
				mockService.On("CompleteActivity", mock.Anything, testUserID, testActivityID, mock.AnythingOfType("*model.CompleteActivityRequest")).
					Return(resp, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"already_completed":true`,
		},
		{
			name:           "異常系: activity_idがUUIDでない",
			activityIDStr:  "not-a-uuid",
			body:           nil,
			withAuth:       true,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"INVALID_URL_PARAM"`,
		},
		{
			name:          "異常系: アクティビティが見つからない",
			activityIDStr: testActivityID.String(),
			body:          nil,
			withAuth:      true,
			setupMock: func() {
				appErr := model.NewAppError("ACTIVITY_NOT_FOUND", "アクティビティが見つかりません。", "", model.ErrNotFound)
				mockService.On("CompleteActivity", mock.Anything, testUserID, testActivityID, mock.AnythingOfType("*model.CompleteActivityRequest")).
					Return(nil, appErr).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"ACTIVITY_NOT_FOUND"`,
		},
		{
			name:           "異常系: 未認証",
			activityIDStr:  testActivityID.String(),
			body:           nil,
			withAuth:       false,
			setupMock:      func() {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"UNAUTHORIZED"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.Mock = mock.Mock{} // モックをリセット
			tt.setupMock()

			req := newJsonRequestTask(t, http.MethodPost, "/api/v1/activities/"+tt.activityIDStr+"/complete", tt.body)
			ctx := req.Context()
			if tt.withAuth {
				ctx = contextWithUserID(ctx, testUserID)
			}
			ctx = contextWithChiURLParam(ctx, "activity_id", tt.activityIDStr)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.CompleteActivity(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
