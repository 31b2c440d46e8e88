package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"leadclip/internal/modules/prospect/domain"
	prospectout "leadclip/internal/modules/prospect/port/out"
)

// HTTPBackendAPI is the REST client for the prospect backend.
type HTTPBackendAPI struct {
	baseURL string
	client  *http.Client
}

func NewHTTPBackendAPI(baseURL string) prospectout.BackendAPI {
	return &HTTPBackendAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type skillsResponse struct {
	Skills []string `json:"skills"`
}

func (a *HTTPBackendAPI) Create(ctx context.Context, token string, p domain.Prospect) (domain.Prospect, error) {
	// The local all-digit id never reaches the backend; the server
	// issues the real one.
	p.ID = ""
	saved := domain.Prospect{}
	if err := a.do(ctx, http.MethodPost, "/prospects", token, p, &saved); err != nil {
		return domain.Prospect{}, err
	}
	return saved, nil
}

func (a *HTTPBackendAPI) Update(ctx context.Context, token string, p domain.Prospect) (domain.Prospect, error) {
	id := p.ID
	// The id addresses the resource in the path, never in the body.
	p.ID = ""
	saved := domain.Prospect{}
	if err := a.do(ctx, http.MethodPut, "/prospects/"+url.PathEscape(id), token, p, &saved); err != nil {
		return domain.Prospect{}, err
	}
	if saved.ID == "" {
		saved.ID = id
	}
	return saved, nil
}

func (a *HTTPBackendAPI) List(ctx context.Context, token string, filter prospectout.ListFilter) ([]domain.Prospect, error) {
	path := "/prospects"
	switch {
	case filter.UserID != "":
		path = "/prospects/user/" + url.PathEscape(filter.UserID)
	case filter.HandlerID != "":
		path = "/prospects/lh/" + url.PathEscape(filter.HandlerID)
	}
	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(s domain.Status, _ int) string { return string(s) })
		path += "?status=" + url.QueryEscape(strings.Join(statuses, ","))
	}
	var prospects []domain.Prospect
	if err := a.do(ctx, http.MethodGet, path, token, nil, &prospects); err != nil {
		return nil, err
	}
	return prospects, nil
}

func (a *HTTPBackendAPI) Skills(ctx context.Context, token string) ([]string, error) {
	resp := skillsResponse{}
	if err := a.do(ctx, http.MethodGet, "/skills", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

func (a *HTTPBackendAPI) TeamMembers(ctx context.Context, token string) ([]prospectout.TeamMember, error) {
	var members []prospectout.TeamMember
	if err := a.do(ctx, http.MethodGet, "/users", token, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (a *HTTPBackendAPI) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
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
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
