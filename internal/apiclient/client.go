// Package apiclient talks to the Vendora HTTP API on behalf of the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/validation"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

// Error is a non-2xx answer of the API.
type Error struct {
	Status int
	model.ErrorResponse
}

func (e *Error) Error() string {
	if e.ErrorResponse.Error == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return e.ErrorResponse.Error
}

// Client is a session-bound API client.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Login signs in and returns the session. The client keeps the token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.SessionResponse, error) {
	var session model.SessionResponse
	in := validation.LoginInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

func (c *Client) Me(ctx context.Context) (*model.UserResponse, error) {
	var me model.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) Open(ctx context.Context, kind wizard.Kind) (*model.TransferState, error) {
	return c.transfer(ctx, kind, "open", nil)
}

func (c *Client) Close(ctx context.Context, kind wizard.Kind) (*model.TransferState, error) {
	return c.transfer(ctx, kind, "close", nil)
}

func (c *Client) ChooseRecipient(ctx context.Context, kind wizard.Kind, t validation.RecipientType) (*model.TransferState, error) {
	return c.transfer(ctx, kind, "recipient", model.RecipientRequest{RecipientType: t})
}

func (c *Client) SubmitCrypto(ctx context.Context, in validation.SendCryptoInput) (*model.TransferState, error) {
	return c.transfer(ctx, wizard.KindCrypto, "details", in)
}

func (c *Client) SubmitFiat(ctx context.Context, in validation.SendFiatInput) (*model.TransferState, error) {
	return c.transfer(ctx, wizard.KindFiat, "details", in)
}

func (c *Client) Confirm(ctx context.Context, kind wizard.Kind) (*model.TransferState, error) {
	return c.transfer(ctx, kind, "confirm", nil)
}

// SubmitCode pastes code into the server side input and submits it.
func (c *Client) SubmitCode(ctx context.Context, kind wizard.Kind, code string) (*model.TransferState, error) {
	return c.transfer(ctx, kind, "code", model.CodeRequest{Code: code})
}

func (c *Client) transfer(ctx context.Context, kind wizard.Kind, action string, body interface{}) (*model.TransferState, error) {
	var st model.TransferState
	if err := c.do(ctx, http.MethodPost, "/wallet/send/"+string(kind)+"/"+action, body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: c.token})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.ErrorResponse)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
