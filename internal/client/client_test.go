package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/client"
	"github.com/phrazzld/todo-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRoundTrip(t *testing.T) {
	srv := testutils.NewTodoServer(t)
	c := client.New(srv.URL + "/")
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.WithinDuration(t, time.Now(), health.TS, time.Minute)

	created, err := c.Create(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)

	updated, err := c.Update(ctx, created.ID, map[string]any{"completed": true, "note": "2%"})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.UpdatedAt)
	assert.JSONEq(t, `"2%"`, string(updated.Extra["note"]))

	todos, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)

	removed, err := c.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = c.Delete(ctx, created.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestClientAPIError(t *testing.T) {
	srv := testutils.NewTodoServer(t)
	c := client.New(srv.URL)

	_, err := c.Create(context.Background(), "   ")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "title is required", apiErr.Message)
	assert.False(t, client.IsNotFound(err))
	assert.Equal(t, "todo api: status 400: title is required", apiErr.Error())
}

func TestClientUnreachable(t *testing.T) {
	srv := testutils.NewTodoServer(t)
	url := srv.URL
	srv.Close()

	c := client.New(url, client.WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.Health(context.Background())

	assert.Error(t, err)
}
