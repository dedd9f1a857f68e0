// Package platform is the HTTP client for the platform backend: auth
// sessions, content store, moderation, safety, notifications, anonymous
// identity and call persistence all live behind its internal REST API.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

// Client implements every collaborator port in core against the platform
// backend. One struct on purpose: the backend is one service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.NotFoundf("platform_not_found", "%s %s", req.Method, req.URL.Path)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return core.Authenticationf("platform_rejected", "%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ---- AuthSessionProvider ----

func (c *Client) CurrentIdentity(ctx context.Context, token string) (*core.Identity, error) {
	var resp struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	}
	q := url.Values{"token": {token}}
	if err := c.get(ctx, "/internal/auth/session", q, &resp); err != nil {
		return nil, err
	}
	if resp.UserID == "" {
		return nil, core.Authenticationf("no_identity", "token resolves to no identity")
	}
	return &core.Identity{UserID: domain.UserID(resp.UserID), Username: resp.Username, IsAdmin: resp.IsAdmin}, nil
}

// ---- ContentStore ----

func (c *Client) CreateMessage(ctx context.Context, m core.NewMessage) (domain.MessageID, error) {
	req := struct {
		RoomID        string `json:"room_id"`
		AuthorID      string `json:"author_id"`
		Content       string `json:"content"`
		Kind          string `json:"kind"`
		Alias         string `json:"alias,omitempty"`
		AttachmentRef string `json:"attachment_ref,omitempty"`
	}{
		RoomID:        string(m.RoomID),
		AuthorID:      string(m.AuthorID),
		Content:       m.Content,
		Kind:          string(m.Kind),
		Alias:         m.Alias,
		AttachmentRef: m.AttachmentRef,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/internal/messages", req, &resp); err != nil {
		return "", err
	}
	return domain.MessageID(resp.ID), nil
}

func (c *Client) GetMessage(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	var msg domain.Message
	if err := c.get(ctx, "/internal/messages/"+url.PathEscape(string(id)), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ---- ModerationPolicy ----

func (c *Client) IsBanned(ctx context.Context, userID domain.UserID, scopeID string) (bool, error) {
	var resp struct {
		Banned bool `json:"banned"`
	}
	q := url.Values{"user_id": {string(userID)}, "scope_id": {scopeID}}
	if err := c.get(ctx, "/internal/moderation/ban", q, &resp); err != nil {
		return false, err
	}
	return resp.Banned, nil
}

func (c *Client) PermissionLevel(ctx context.Context, userID domain.UserID, scopeID string) (int, error) {
	var resp struct {
		Level int `json:"level"`
	}
	q := url.Values{"user_id": {string(userID)}, "scope_id": {scopeID}}
	if err := c.get(ctx, "/internal/moderation/permission", q, &resp); err != nil {
		return 0, err
	}
	return resp.Level, nil
}

// ---- ContentSafetyFilter ----

func (c *Client) Classify(ctx context.Context, text string) (core.Verdict, error) {
	req := struct {
		Text string `json:"text"`
	}{Text: text}
	var resp struct {
		Severity     string `json:"severity"`
		FilteredText string `json:"filtered_text"`
	}
	if err := c.post(ctx, "/internal/safety/classify", req, &resp); err != nil {
		return core.Verdict{}, err
	}
	return core.Verdict{Severity: core.Severity(resp.Severity), FilteredText: resp.FilteredText}, nil
}

// ---- NotificationStore ----

func (c *Client) IsMuted(ctx context.Context, userID domain.UserID, scopeKind domain.RoomKind, scopeID string) (bool, error) {
	var resp struct {
		Muted bool `json:"muted"`
	}
	q := url.Values{
		"user_id":    {string(userID)},
		"scope_kind": {string(scopeKind)},
		"scope_id":   {scopeID},
	}
	if err := c.get(ctx, "/internal/notifications/mute", q, &resp); err != nil {
		return false, err
	}
	return resp.Muted, nil
}

func (c *Client) RecordMention(ctx context.Context, rec core.MentionRecord) error {
	req := struct {
		UserID    string `json:"user_id"`
		AuthorID  string `json:"author_id"`
		RoomID    string `json:"room_id"`
		MessageID string `json:"message_id"`
	}{
		UserID:    string(rec.UserID),
		AuthorID:  string(rec.AuthorID),
		RoomID:    string(rec.RoomID),
		MessageID: string(rec.MessageID),
	}
	return c.post(ctx, "/internal/notifications/mentions", req, nil)
}

// ---- AnonymousIdentityService ----

func (c *Client) GetOrCreateAlias(ctx context.Context, userID domain.UserID, scopeID string) (string, error) {
	req := struct {
		UserID  string `json:"user_id"`
		ScopeID string `json:"scope_id"`
	}{UserID: string(userID), ScopeID: scopeID}
	var resp struct {
		Alias string `json:"alias"`
	}
	if err := c.post(ctx, "/internal/anonymous/alias", req, &resp); err != nil {
		return "", err
	}
	return resp.Alias, nil
}

// ---- CallStore ----

func (c *Client) SaveCall(ctx context.Context, call *domain.Call) error {
	return c.post(ctx, "/internal/calls", call, nil)
}

func (c *Client) UpdateCall(ctx context.Context, call *domain.Call) error {
	return c.post(ctx, "/internal/calls/"+url.PathEscape(string(call.ID)), call, nil)
}
