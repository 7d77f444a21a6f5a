//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitquest/internal/misc"
)

func (s *IntegrationTestSuite) TestRegister() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds := newCredentials()
	resp := doRequest(ctx, t, "POST", "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered misc.RegisterResponse
	decodeBody(t, resp, &registered)
	assert.Positive(t, registered.ID)
	assert.Equal(t, creds.Username, registered.Username)

	var storedHash string
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT password_hash FROM fq_user WHERE id = $1`, registered.ID,
	).Scan(&storedHash))
	assert.NotEqual(t, creds.Password, storedHash)

	resp = doRequest(ctx, t, "POST", "/a/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(ctx, t, "POST", "/a/register", "", credentials{Username: "x", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds := newCredentials()
	resp := doRequest(ctx, t, "POST", "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cases := map[string]struct {
		creds              credentials
		expectedStatusCode int
	}{
		"good creds": {
			creds:              creds,
			expectedStatusCode: http.StatusOK,
		},
		"wrong password": {
			creds:              credentials{Username: creds.Username, Password: creds.Password + "x"},
			expectedStatusCode: http.StatusBadRequest,
		},
		"unknown user": {
			creds:              credentials{Username: creds.Username + "-nope", Password: creds.Password},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			resp := doRequest(ctx, t, "POST", "/a/login", "", tc.creds)
			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)
			if tc.expectedStatusCode == http.StatusOK {
				var loginResp misc.LoginResponse
				decodeBody(t, resp, &loginResp)
				assert.NotEmpty(t, loginResp.Token)
			}
		})
	}
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, token := registerAndLogin(ctx, t)

	resp := doRequest(ctx, t, "GET", "/avatar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/a/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the token is still validly signed, but its session is gone
	resp = doRequest(ctx, t, "GET", "/avatar", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/a/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
