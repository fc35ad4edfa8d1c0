package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/resumatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestVerifyEmailHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockEmailVerifier(ctrl)

	tests := []struct {
		name         string
		token        string
		mockSetup    func()
		expectedCode int
		expectedBody string
	}{
		{
			name:  "success",
			token: "valid-token",
			mockSetup: func() {
				mockSvc.EXPECT().
					VerifyEmail(gomock.Any(), "valid-token").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message": "Email verified successfully"}`,
		},
		{
			name:  "invalid token",
			token: "stale-token",
			mockSetup: func() {
				mockSvc.EXPECT().
					VerifyEmail(gomock.Any(), "stale-token").
					Return(services.ErrInvalidVerificationToken)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error": "Invalid verification token"}`,
		},
		{
			name:  "missing token",
			token: "",
			mockSetup: func() {
				mockSvc.EXPECT().
					VerifyEmail(gomock.Any(), "").
					Return(services.ErrInvalidVerificationToken)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error": "Invalid verification token"}`,
		},
		{
			name:  "internal error",
			token: "valid-token",
			mockSetup: func() {
				mockSvc.EXPECT().
					VerifyEmail(gomock.Any(), "valid-token").
					Return(errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error": "Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email?token="+tt.token, nil)
			rec := httptest.NewRecorder()

			NewVerifyEmailHandler(mockSvc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
