//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/fitquest/internal/misc"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func pingServer() error {
	req, err := http.NewRequest("GET", serverEndpoint+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "test-agent")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func newCredentials() credentials {
	return credentials{
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}

// doRequest sends a request to the running server. body, when not nil, is
// sent as JSON. token, when not empty, goes into the Authorization header.
func doRequest(ctx context.Context, t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBytes, dst), string(respBytes))
}

func registerAndLogin(ctx context.Context, t *testing.T) (misc.RegisterResponse, string) {
	t.Helper()
	creds := newCredentials()

	resp := doRequest(ctx, t, "POST", "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered misc.RegisterResponse
	decodeBody(t, resp, &registered)

	resp = doRequest(ctx, t, "POST", "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp misc.LoginResponse
	decodeBody(t, resp, &loginResp)
	require.NotEmpty(t, loginResp.Token)

	return registered, loginResp.Token
}
