package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

func (app *TestApp) join(t *testing.T, activityID uuid.UUID, token string) (*http.Response, ports.JoinResult) {
	t.Helper()

	req := mustRequest(t, http.MethodPost, fmt.Sprintf("%s/api/activities/%s/join", app.Server.URL, activityID), nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Client.Do(req)
	require.NoError(t, err)

	var result ports.JoinResult
	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	}
	resp.Body.Close()
	return resp, result
}

func TestJoinIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	eventID := app.createEvent(t)
	activity := app.createLivePollActivity(t, eventID)
	_, token := app.createParticipantAndToken(t, eventID)

	resp, first := app.join(t, activity.ID, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.False(t, first.AlreadyJoined)

	resp, second := app.join(t, activity.ID, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, second.AlreadyJoined)
	// Postgres stores microseconds, so compare with tolerance
	assert.WithinDuration(t, first.JoinedAt, second.JoinedAt, time.Second)
}

func TestCanJoin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	eventID := app.createEvent(t)
	activity := app.createLivePollActivity(t, eventID)

	resp, err := app.Client.Get(fmt.Sprintf("%s/api/activities/%s/can-join", app.Server.URL, activity.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ports.CanJoinResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.True(t, result.CanJoin)

	// End the activity and ask again
	resp, err = app.Client.Post(fmt.Sprintf("%s/api/activities/%s/end", app.Server.URL, activity.ID), "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(fmt.Sprintf("%s/api/activities/%s/can-join", app.Server.URL, activity.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.False(t, result.CanJoin)
	assert.Equal(t, "ended", result.Reason)

	// Unknown activities can not be joined either
	resp, err = app.Client.Get(fmt.Sprintf("%s/api/activities/%s/can-join", app.Server.URL, uuid.New()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.False(t, result.CanJoin)
	assert.Equal(t, "not_found", result.Reason)
}
