package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadclip/internal/modules/auth/domain"
	authout "leadclip/internal/modules/auth/port/out"
)

// HTTPAuthAPI talks to the backend auth endpoints. Non-2xx responses
// surface the server's error message when one is present.
type HTTPAuthAPI struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAuthAPI(baseURL string) authout.AuthAPI {
	return &HTTPAuthAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return a.login(ctx, "/auth/login", email, password)
}

func (a *HTTPAuthAPI) DashboardLogin(ctx context.Context, email, password string) (domain.User, string, error) {
	return a.login(ctx, "/auth/dashboard-login", email, password)
}

func (a *HTTPAuthAPI) login(ctx context.Context, path, email, password string) (domain.User, string, error) {
	resp := loginResponse{}
	if err := a.post(ctx, path, "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return domain.User{}, "", err
	}
	if resp.Token == "" {
		return domain.User{}, "", fmt.Errorf("login response carried no token")
	}
	return resp.User, resp.Token, nil
}

func (a *HTTPAuthAPI) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	return a.post(ctx, "/auth/change-password", token, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

func (a *HTTPAuthAPI) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := errorResponse{}
		if json.Unmarshal(raw, &serverErr) == nil && serverErr.Error != "" {
			return fmt.Errorf("%s: %s", path, serverErr.Error)
		}
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
