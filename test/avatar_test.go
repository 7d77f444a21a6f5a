//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitquest/internal/avatar"
)

func (s *IntegrationTestSuite) TestAvatar_Flow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registered, token := registerAndLogin(ctx, t)

	resp := doRequest(ctx, t, "GET", "/avatar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a avatar.Avatar
	decodeBody(t, resp, &a)
	assert.Equal(t, registered.ID, a.UserID)
	assert.Equal(t, 1, a.Level)
	assert.Equal(t, 0, a.BossLevel)

	// 150 points cross the 100 threshold once, the rest is kept
	points := 150
	resp = doRequest(ctx, t, "POST", "/avatar/experience", token, avatar.AddExperienceRequest{Points: &points})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var expResp avatar.AddExperienceResponse
	decodeBody(t, resp, &expResp)
	assert.True(t, expResp.LeveledUp)
	assert.Equal(t, 2, expResp.Avatar.Level)
	assert.Equal(t, 50, expResp.Avatar.Experience)

	resp = doRequest(ctx, t, "POST", "/avatar/upgrade", token, avatar.UpgradeStatRequest{Stat: avatar.StatHP})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &a)
	assert.InDelta(t, 12.0, a.HP, 1e-9)

	resp = doRequest(ctx, t, "POST", "/avatar/upgrade", token, avatar.UpgradeStatRequest{Stat: avatar.StatDefense})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &a)
	assert.InDelta(t, 12.0, a.Defense, 1e-9)

	resp = doRequest(ctx, t, "POST", "/avatar/upgrade", token, map[string]string{"stat": "luck"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/avatar/boss", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next avatar.NextBoss
	decodeBody(t, resp, &next)
	assert.Equal(t, 1, next.BossLevel)
	assert.InDelta(t, 50.0, next.Stats.HP, 1e-9)

	resp = doRequest(ctx, t, "POST", "/avatar/boss/advance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &a)
	assert.Equal(t, 1, a.BossLevel)

	resp = doRequest(ctx, t, "GET", "/avatar/boss", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &next)
	assert.Equal(t, 2, next.BossLevel)

	var storedVersion, storedLevel int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT version, level FROM avatar WHERE user_id = $1`, registered.ID,
	).Scan(&storedVersion, &storedLevel))
	assert.Equal(t, 2, storedLevel)
	assert.Equal(t, a.Version, storedVersion)
}

func (s *IntegrationTestSuite) TestAvatar_InvalidExperience() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, token := registerAndLogin(ctx, t)

	negative := -5
	resp := doRequest(ctx, t, "POST", "/avatar/experience", token, avatar.AddExperienceRequest{Points: &negative})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(ctx, t, "POST", "/avatar/experience", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/avatar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a avatar.Avatar
	decodeBody(t, resp, &a)
	assert.Equal(t, 0, a.Experience)
}

func (s *IntegrationTestSuite) TestAvatar_ConcurrentExperience() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, token := registerAndLogin(ctx, t)

	// make sure the avatar exists before the writers race
	resp := doRequest(ctx, t, "GET", "/avatar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	const writers = 5
	points := 10
	var wg sync.WaitGroup
	statuses := make(chan int, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := doRequest(ctx, t, "POST", "/avatar/experience", token, avatar.AddExperienceRequest{Points: &points})
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	succeeded := 0
	for status := range statuses {
		switch status {
		case http.StatusOK:
			succeeded++
		case http.StatusConflict:
		default:
			t.Errorf("unexpected status: %d", status)
		}
	}

	resp = doRequest(ctx, t, "GET", "/avatar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a avatar.Avatar
	decodeBody(t, resp, &a)
	// no update is lost: every accepted request is reflected exactly once
	assert.Equal(t, succeeded*points, a.Experience)
}

func (s *IntegrationTestSuite) TestBossStats_Public() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doRequest(ctx, t, "GET", "/boss/1/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats avatar.BossStats
	decodeBody(t, resp, &stats)
	assert.InDelta(t, 50.0, stats.HP, 1e-9)

	resp = doRequest(ctx, t, "GET", "/boss/0/stats", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/avatar", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
