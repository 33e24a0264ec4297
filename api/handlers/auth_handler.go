package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"packtrack-service/api/middleware"
	"packtrack-service/api/response"
	"packtrack-service/auth"
	"packtrack-service/workers/shipments/state"
)

const (
	authErrorPath   = "/auth/error"
	verifierCookie  = "packtrack_code_verifier"
	verifierMaxAge  = 3600
	defaultNextPath = "/"
)

type AuthHandler struct {
	Provider     auth.Provider
	Sessions     *auth.Sessions
	Registry     *state.Registry
	Logger       *zap.Logger
	SecureCookie bool
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type magicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	User      *auth.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt int64      `json:"expiresAt"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if !BindAndValidate(c, &req) {
		return
	}

	user, err := h.Provider.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.startSession(c, user)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if !BindAndValidate(c, &req) {
		return
	}

	user, err := h.Provider.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.startSession(c, user)
}

func (h *AuthHandler) MagicLink(c *gin.Context) {
	var req magicLinkRequest
	if !BindAndValidate(c, &req) {
		return
	}

	verifier, err := auth.NewCodeVerifier()
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	if err := h.Provider.SendMagicLink(c.Request.Context(), req.Email, auth.CodeChallenge(verifier)); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.setVerifier(c, verifier, verifierMaxAge)
	response.SuccessWithMsg(c, "Check your email for the login link", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Registry.Drop(middleware.OwnerID(c))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.SecureCookie, true)
	response.Success(c, nil)
}

// Callback completes a magic link or OAuth round trip: it exchanges the code
// or token hash, sets the session cookie and redirects to next.
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	next := safeNext(c.Query("next"))

	code := c.Query("code")
	tokenHash, kind := c.Query("token_hash"), c.Query("type")
	if code == "" && (tokenHash == "" || kind == "") {
		c.Redirect(http.StatusFound, authErrorPath)
		return
	}

	var user *auth.User
	var err error
	if code != "" {
		verifier, _ := c.Cookie(verifierCookie)
		h.setVerifier(c, "", -1)
		user, err = h.Provider.ExchangeCode(ctx, code, verifier)
		if err != nil && tokenHash != "" && kind != "" {
			h.Logger.Debug("Code exchange failed, trying token hash", zap.Error(err))
			user, err = nil, nil
		}
	}
	if user == nil && err == nil {
		user, err = h.Provider.VerifyTokenHash(ctx, tokenHash, kind)
	}
	if err != nil {
		h.Logger.Warn("Auth callback failed", zap.Error(err))
		c.Redirect(http.StatusFound, authErrorPath)
		return
	}

	if _, _, err := h.issue(c, user); err != nil {
		h.Logger.Error("Failed to issue session", zap.Error(err))
		c.Redirect(http.StatusFound, authErrorPath)
		return
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) startSession(c *gin.Context, user *auth.User) {
	token, expiresAt, err := h.issue(c, user)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Registry.For(c.Request.Context(), user.ID)
	response.Success(c, sessionResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) issue(c *gin.Context, user *auth.User) (string, int64, error) {
	token, expiresAt, err := h.Sessions.Issue(user)
	if err != nil {
		return "", 0, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(h.Sessions.TTL().Seconds()), "/", "", h.SecureCookie, true)
	return token, expiresAt.Unix(), nil
}

// setVerifier stores the PKCE code verifier for the callback; a negative
// maxAge clears it.
func (h *AuthHandler) setVerifier(c *gin.Context, verifier string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(verifierCookie, verifier, maxAge, "/", "", h.SecureCookie, true)
}

// safeNext only follows same-site relative paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultNextPath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultNextPath
	}
	return next
}
