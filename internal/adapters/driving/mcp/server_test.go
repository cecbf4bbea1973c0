package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/tuitest"
)

func TestNewServer(t *testing.T) {
	t.Run("nil directory service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDirectoryService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Directory: tuitest.NewDirectory()})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingDirectoryService)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingDirectoryService)
	assert.NoError(t, (&Ports{Directory: tuitest.NewDirectory()}).Validate())
}

func newTestServer(t *testing.T) (*Server, *tuitest.Directory) {
	t.Helper()
	dir := tuitest.NewDirectory()
	server, err := NewServer(&Ports{Directory: dir})
	require.NoError(t, err)
	return server, dir
}

func TestServer_Handler(t *testing.T) {
	server, _ := newTestServer(t)
	assert.NotNil(t, server.Handler())
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	server, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancellation")
	}
}
