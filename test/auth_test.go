package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack/internal/users"
)

// every request carries the test origin so it passes the CORS gate
const testOrigin = "test"

func (s *IntegrationTestSuite) newRequest(
	ctx context.Context,
	method, path, token string,
	body io.Reader,
) *http.Request {
	t := s.T()
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)
	if token != "" {
		req.Header.Set("X-FITTRACK-TOKEN", token)
	}
	return req
}

func (s *IntegrationTestSuite) doRequest(req *http.Request) *http.Response {
	t := s.T()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *IntegrationTestSuite) registerUser(ctx context.Context, username, password string) users.User {
	t := s.T()

	reqJson, err := json.Marshal(users.RegisterRequest{
		Username: username,
		Email:    username + "@fittrack.test",
		Password: password,
	})
	require.NoError(t, err)

	req := s.newRequest(ctx, http.MethodPost, "/register", "", bytes.NewReader(reqJson))
	req.Header.Set("Content-Type", "application/json")

	resp := s.doRequest(req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user users.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	require.NotZero(t, user.ID)
	return user
}

func (s *IntegrationTestSuite) login(ctx context.Context, username, password string) string {
	t := s.T()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := s.newRequest(ctx, http.MethodPost, "/login", "", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := s.doRequest(req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

func (s *IntegrationTestSuite) logout(ctx context.Context, token string) {
	t := s.T()
	req := s.newRequest(ctx, http.MethodPost, "/logout", token, nil)
	resp := s.doRequest(req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// promoteToAdmin flips the role directly in the db, there is no API
// route for it
func (s *IntegrationTestSuite) promoteToAdmin(ctx context.Context, userID int) {
	t := s.T()
	tag, err := s.DB.Exec(ctx, `UPDATE users SET role = 'admin' WHERE id = $1;`, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, gofakeit.LetterN(8))
}
