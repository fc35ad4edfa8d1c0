package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/resumatch/backend/internal/models"
	"github.com/resumatch/backend/internal/services"
)

const testFrontendURL = "http://localhost:3000"

// newGoogleTestHandler points the handler at local token and userinfo servers.
func newGoogleTestHandler(svc OAuthLoginer, tokenURL, userinfoURL string) *GoogleHandler {
	h := NewGoogleHandler("client-id", "client-secret", "http://localhost:8080/api/auth/google/callback", svc, testFrontendURL)
	h.oauth.Endpoint = oauth2.Endpoint{AuthURL: tokenURL + "/auth", TokenURL: tokenURL + "/token"}
	h.userinfoURL = userinfoURL
	return h
}

func TestGoogleHandler_LoginRedirect(t *testing.T) {
	h := NewGoogleHandler("client-id", "client-secret", "http://localhost:8080/api/auth/google/callback", nil, testFrontendURL)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login/google", nil)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, "accounts.google.com", loc.Host)
	assert.Equal(t, services.IntentLogin, loc.Query().Get("state"))
	assert.Equal(t, "client-id", loc.Query().Get("client_id"))
}

func TestGoogleHandler_RegisterRedirect(t *testing.T) {
	h := NewGoogleHandler("client-id", "client-secret", "http://localhost:8080/api/auth/google/callback", nil, testFrontendURL)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/register/google", nil)
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, services.IntentRegister, loc.Query().Get("state"))
}

func TestGoogleHandler_Callback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockOAuthLoginer(ctrl)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "google-access", "refresh_token": "google-refresh", "token_type": "Bearer"}`)
	}))
	defer tokenSrv.Close()

	userinfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "google-123", "email": "john@example.com", "name": "John Doe", "picture": "https://example.com/p.jpg"}`)
	}))
	defer userinfoSrv.Close()

	profile := models.GoogleProfile{
		ID:       "google-123",
		Email:    "john@example.com",
		Name:     "John Doe",
		PhotoURL: "https://example.com/p.jpg",
	}

	t.Run("login success", func(t *testing.T) {
		h := newGoogleTestHandler(mockSvc, tokenSrv.URL, userinfoSrv.URL)

		mockSvc.EXPECT().
			OAuthLogin(gomock.Any(), profile, "google-access", "google-refresh", services.IntentLogin).
			Return("issued.jwt", nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=login", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/auth/success?token=issued.jwt", rec.Header().Get("Location"))
	})

	t.Run("register intent rides the state parameter", func(t *testing.T) {
		h := newGoogleTestHandler(mockSvc, tokenSrv.URL, userinfoSrv.URL)

		mockSvc.EXPECT().
			OAuthLogin(gomock.Any(), profile, "google-access", "google-refresh", services.IntentRegister).
			Return("issued.jwt", nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=register", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("no account on login intent", func(t *testing.T) {
		h := newGoogleTestHandler(mockSvc, tokenSrv.URL, userinfoSrv.URL)

		mockSvc.EXPECT().
			OAuthLogin(gomock.Any(), profile, "google-access", "google-refresh", services.IntentLogin).
			Return("", services.ErrNotRegistered)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=login", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/auth/error?message=no-account-found", rec.Header().Get("Location"))
	})

	t.Run("user denied access", func(t *testing.T) {
		h := newGoogleTestHandler(mockSvc, tokenSrv.URL, userinfoSrv.URL)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?error=access_denied", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/auth/error?message=access-denied", rec.Header().Get("Location"))
	})

	t.Run("code exchange failure", func(t *testing.T) {
		brokenTokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer brokenTokenSrv.Close()

		h := newGoogleTestHandler(mockSvc, brokenTokenSrv.URL, userinfoSrv.URL)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=login", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/auth/error?message=authentication-failed", rec.Header().Get("Location"))
	})

	t.Run("userinfo failure", func(t *testing.T) {
		brokenUserinfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer brokenUserinfoSrv.Close()

		h := newGoogleTestHandler(mockSvc, tokenSrv.URL, brokenUserinfoSrv.URL)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=login", nil)
		rec := httptest.NewRecorder()

		h.Callback(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/auth/error?message=authentication-failed", rec.Header().Get("Location"))
	})
}
