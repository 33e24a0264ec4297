package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"packtrack-service/config"
)

// GoTrueProvider talks to a GoTrue compatible auth API.
type GoTrueProvider struct {
	baseUri     string
	apiKey      string
	redirectUri string
	client      *http.Client
}

func NewGoTrueProvider(cfg config.AuthConfig) *GoTrueProvider {
	return &GoTrueProvider{
		baseUri:     strings.TrimRight(cfg.BaseUri, "/"),
		apiKey:      cfg.ApiKey,
		redirectUri: cfg.RedirectUri,
		client:      &http.Client{Timeout: 20 * time.Second},
	}
}

type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// goTrueSession covers both shapes returned by GoTrue: a session wrapping the
// user, or the bare user when e-mail confirmation is pending.
type goTrueSession struct {
	AccessToken string      `json:"access_token"`
	User        *goTrueUser `json:"user"`
	goTrueUser
}

type goTrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (p *GoTrueProvider) SignInWithPassword(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	return p.session(ctx, "/token?grant_type=password", body)
}

func (p *GoTrueProvider) SignUp(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	return p.session(ctx, "/signup", body)
}

// SendMagicLink asks the provider to mail a sign-in link. With a PKCE
// challenge the link carries a code that ExchangeCode redeems.
func (p *GoTrueProvider) SendMagicLink(ctx context.Context, email, codeChallenge string) error {
	path := "/otp"
	if p.redirectUri != "" {
		path += "?redirect_to=" + url.QueryEscape(p.redirectUri)
	}
	body := map[string]interface{}{"email": email, "create_user": true}
	if codeChallenge != "" {
		body["code_challenge"] = codeChallenge
		body["code_challenge_method"] = CodeChallengeMethod
	}
	return p.post(ctx, path, body, nil)
}

func (p *GoTrueProvider) ExchangeCode(ctx context.Context, code, verifier string) (*User, error) {
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	return p.session(ctx, "/token?grant_type=pkce", body)
}

func (p *GoTrueProvider) VerifyTokenHash(ctx context.Context, tokenHash, kind string) (*User, error) {
	body := map[string]string{"token_hash": tokenHash, "type": kind}
	return p.session(ctx, "/verify", body)
}

func (p *GoTrueProvider) session(ctx context.Context, path string, body interface{}) (*User, error) {
	var out goTrueSession
	if err := p.post(ctx, path, body, &out); err != nil {
		return nil, err
	}

	u := out.goTrueUser
	if out.User != nil {
		u = *out.User
	}
	if u.ID == "" {
		return nil, errors.New("auth provider returned no user")
	}
	return &User{ID: u.ID, Email: u.Email}, nil
}

func (p *GoTrueProvider) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseUri+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &ProviderError{Status: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var e goTrueError
	if json.Unmarshal(body, &e) == nil {
		for _, msg := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return "request failed"
}
