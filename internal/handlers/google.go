package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
	"github.com/resumatch/backend/internal/services"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Redirect reason codes exposed to the frontend on OAuth failure. Coarse on
// purpose: internals are never leaked through the redirect.
const (
	oauthErrAuthFailed   = "authentication-failed"
	oauthErrNoAccount    = "no-account-found"
	oauthErrAccessDenied = "access-denied"
)

// OAuthLoginer defines the interface that the OAuth service must implement.
type OAuthLoginer interface {
	OAuthLogin(ctx context.Context, profile models.GoogleProfile, accessToken, refreshToken, intent string) (string, error)
}

// GoogleHandler serves the Google OAuth login, register and callback routes.
type GoogleHandler struct {
	oauth       *oauth2.Config
	svc         OAuthLoginer
	frontendURL string
	userinfoURL string
}

// NewGoogleHandler creates the Google OAuth handler set.
func NewGoogleHandler(clientID, clientSecret, redirectURL string, svc OAuthLoginer, frontendURL string) *GoogleHandler {
	return &GoogleHandler{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		svc:         svc,
		frontendURL: frontendURL,
		userinfoURL: googleUserinfoURL,
	}
}

// Login redirects to Google for authentication with login intent.
// @Summary Login with Google
// @Tags auth
// @Success 302 "Redirect to Google"
// @Router /auth/login/google [get]
func (h *GoogleHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.redirectToGoogle(w, r, services.IntentLogin)
}

// Register redirects to Google for authentication with register intent.
// @Summary Register with Google
// @Tags auth
// @Success 302 "Redirect to Google"
// @Router /auth/register/google [get]
func (h *GoogleHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.redirectToGoogle(w, r, services.IntentRegister)
}

func (h *GoogleHandler) redirectToGoogle(w http.ResponseWriter, r *http.Request, intent string) {
	// Intent rides in the OAuth state parameter and comes back on the callback.
	authURL := h.oauth.AuthCodeURL(intent, oauth2.AccessTypeOffline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles the Google redirect, merges the profile into the account
// store and forwards the bearer token to the frontend as a query parameter.
// @Summary Google OAuth callback
// @Tags auth
// @Success 302 "Redirect to the frontend with token or error reason"
// @Router /auth/google/callback [get]
func (h *GoogleHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		logger.Log.Warnw("google oauth denied", "reason", errParam)
		h.redirectError(w, r, oauthErrAccessDenied)
		return
	}

	intent := r.URL.Query().Get("state")
	if intent != services.IntentRegister {
		intent = services.IntentLogin
	}

	code := r.URL.Query().Get("code")
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Log.Errorw("google oauth code exchange failed", "err", err)
		h.redirectError(w, r, oauthErrAuthFailed)
		return
	}

	profile, err := h.fetchProfile(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to fetch google profile", "err", err)
		h.redirectError(w, r, oauthErrAuthFailed)
		return
	}

	bearer, err := h.svc.OAuthLogin(ctx, profile, token.AccessToken, token.RefreshToken, intent)
	if err != nil {
		if errors.Is(err, services.ErrNotRegistered) {
			h.redirectError(w, r, oauthErrNoAccount)
			return
		}
		logger.Log.Errorw("google oauth login failed", "err", err)
		h.redirectError(w, r, oauthErrAuthFailed)
		return
	}

	logger.Log.Infow("google authentication successful", "email", profile.Email)
	redirectURL := fmt.Sprintf("%s/auth/success?token=%s", h.frontendURL, url.QueryEscape(bearer))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (h *GoogleHandler) fetchProfile(ctx context.Context, token *oauth2.Token) (models.GoogleProfile, error) {
	client := h.oauth.Client(ctx, token)

	resp, err := client.Get(h.userinfoURL)
	if err != nil {
		return models.GoogleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.GoogleProfile{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile models.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.GoogleProfile{}, err
	}
	return profile, nil
}

func (h *GoogleHandler) redirectError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, fmt.Sprintf("%s/auth/error?message=%s", h.frontendURL, reason), http.StatusFound)
}
