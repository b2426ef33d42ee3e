package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

func TestLoginKeepsToken(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(model.SessionResponse{Success: true, Token: "tok"})
		case "/wallet/send/crypto/code":
			if c, err := r.Cookie(auth.CookieName); err == nil {
				gotCookie = c.Value
			}
			var req model.CodeRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(model.TransferState{Flow: "crypto", Step: "final", Code: model.CodeState{Digits: []string{req.Code}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "")
	session, err := c.Login(context.Background(), "ada@acme.ng", "Secr3t!pass")
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)

	st, err := c.SubmitCode(context.Background(), wizard.KindCrypto, "123456")
	require.NoError(t, err)
	assert.Equal(t, "final", st.Step)
	assert.Equal(t, []string{"123456"}, st.Code.Digits)
	assert.Equal(t, "tok", gotCookie)
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.ErrorResponse{
			Error:  "Validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: map[string]string{"amount": "Amount is required"},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok").Confirm(context.Background(), wizard.KindFiat)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Amount is required", apiErr.Fields["amount"])
	assert.Equal(t, "Validation failed", err.Error())
}

func TestTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendora", "token")

	_, err := LoadToken(path)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, SaveToken(path, "tok"))
	token, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
