package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/resumatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestForgotPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPasswordResetRequester(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name:      "success",
			inputBody: ForgotPasswordRequest{Email: "john@example.com"},
			mockSetup: func() {
				mockSvc.EXPECT().
					RequestPasswordReset(gomock.Any(), "john@example.com").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &ForgotPasswordResponse{
				Message: "Password reset email sent",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &ForgotPasswordErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name:      "unknown email",
			inputBody: ForgotPasswordRequest{Email: "nobody@example.com"},
			mockSetup: func() {
				mockSvc.EXPECT().
					RequestPasswordReset(gomock.Any(), "nobody@example.com").
					Return(services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: &ForgotPasswordErrorResponse{
				Error: "User not found",
			},
		},
		{
			name:      "internal error",
			inputBody: ForgotPasswordRequest{Email: "john@example.com"},
			mockSetup: func() {
				mockSvc.EXPECT().
					RequestPasswordReset(gomock.Any(), "john@example.com").
					Return(errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &ForgotPasswordErrorResponse{
				Error: "Internal server error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var body []byte
			switch v := tt.inputBody.(type) {
			case string:
				body = []byte(v)
			default:
				body, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			NewForgotPasswordHandler(mockSvc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			expected, _ := json.Marshal(tt.expectedBody)
			assert.JSONEq(t, string(expected), rec.Body.String())
		})
	}
}
