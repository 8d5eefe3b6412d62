// internal/handlers/task_handler_test.go
package handlers_test // テスト対象とは別のパッケージ名

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tymelyne_backend/internal/handlers"
	"tymelyne_backend/internal/model"

	svc_mocks "tymelyne_backend/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- ヘルパー: ログ出力を抑制したハンドラーのセットアップ ---
func setupTestTaskHandler(mockService *svc_mocks.TaskService) *handlers.TaskHandler {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.NewTaskHandler(mockService, testLogger)
}

// --- ヘルパー: JSONボディ付きリクエストの作成 ---
func newJsonRequestTask(t *testing.T, method, target string, body interface{}) *http.Request {
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req, err := http.NewRequest(method, target, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// --- ヘルパー: 認証済みユーザーのContext ---
func contextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, model.UserIDKey, userID)
}

// --- ヘルパー: chi の RouteContext を設定 ---
func contextWithChiURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

// --- Test GenerateTasks ---
func TestTaskHandler_GenerateTasks(t *testing.T) {
	mockService := new(svc_mocks.TaskService)
	handler := setupTestTaskHandler(mockService)

	testUserID := uuid.New()
	generatedTasks := []*model.Task{
		{TaskID: uuid.New(), UserID: testUserID, Title: "Tymelyneへようこそ！", TaskType: model.TaskTypeOnboarding, Status: model.TaskStatusPending, XPReward: 20},
		{TaskID: uuid.New(), UserID: testUserID, Title: "最初のコースを選ぼう", TaskType: model.TaskTypeCourse, Status: model.TaskStatusPending, XPReward: 30},
	}

	tests := []struct {
		name           string
		body           interface{}
		withAuth       bool
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "正常系: ボディなしで生成",
			body:     nil,
			withAuth: true,
			setupMock: func() {
				mockService.On("GenerateTasks", mock.Anything, testUserID, mock.AnythingOfType("*model.GenerateTasksRequest")).
					Return(generatedTasks, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"Tymelyneへようこそ！"`,
		},
		{
			name:     "正常系: 件数を指定して生成",
			body:     map[string]int{"count": 2},
			withAuth: true,
			setupMock: func() {
				mockService.On("GenerateTasks", mock.Anything, testUserID, mock.MatchedBy(func(req *model.GenerateTasksRequest) bool {
					return req.Count != nil && *req.Count == 2
				})).Return(generatedTasks, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"task_id"`,
		},
		{
			name:           "異常系: countが範囲外",
			body:           map[string]int{"count": 100},
			withAuth:       true,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_ERROR"`,
		},
		{
			name:           "異常系: 未認証",
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

			req := newJsonRequestTask(t, http.MethodPost, "/api/v1/tasks/generate", tt.body)
			if tt.withAuth {
				req = req.WithContext(contextWithUserID(req.Context(), testUserID))
			}
			rr := httptest.NewRecorder()

			handler.GenerateTasks(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

// --- Test UpdateTaskStatus ---
func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	mockService := new(svc_mocks.TaskService)
	handler := setupTestTaskHandler(mockService)

	testUserID := uuid.New()
	testTaskID := uuid.New()
	completedAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	updatedTask := &model.Task{
		TaskID: testTaskID, UserID: testUserID, Title: "今日の学習目標を達成しよう",
		TaskType: model.TaskTypeGoal, Status: model.TaskStatusCompleted,
		XPReward: 20, CompletedAt: &completedAt,
	}

	tests := []struct {
		name           string
		taskIDStr      string
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "正常系: タスクを完了にする",
			taskIDStr: testTaskID.String(),
			body:      map[string]string{"status": "completed"},
			setupMock: func() {
				mockService.On("UpdateTaskStatus", mock.Anything, testUserID, testTaskID, model.TaskStatusCompleted).
					Return(updatedTask, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"completed"`,
		},
		{
			name:           "異常系: 不正なstatus値",
			taskIDStr:      testTaskID.String(),
			body:           map[string]string{"status": "done"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_ERROR"`,
		},
		{
			name:           "異常系: task_idがUUIDでない",
			taskIDStr:      "not-a-uuid",
			body:           map[string]string{"status": "completed"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"INVALID_URL_PARAM"`,
		},
		{
			name:      "異常系: タスクが見つからない",
			taskIDStr: testTaskID.String(),
			body:      map[string]string{"status": "completed"},
			setupMock: func() {
				appErr := model.NewAppError("TASK_NOT_FOUND", "タスクが見つかりません。", "", model.ErrNotFound)
				mockService.On("UpdateTaskStatus", mock.Anything, testUserID, testTaskID, model.TaskStatusCompleted).
					Return(nil, appErr).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"TASK_NOT_FOUND"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.Mock = mock.Mock{}
			tt.setupMock()

			req := newJsonRequestTask(t, http.MethodPatch, "/api/v1/tasks/"+tt.taskIDStr+"/status", tt.body)
			ctx := contextWithUserID(req.Context(), testUserID)
			ctx = contextWithChiURLParam(ctx, "task_id", tt.taskIDStr)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.UpdateTaskStatus(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
