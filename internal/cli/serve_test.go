package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServeCommand(t *testing.T) {
	isolate(t)
	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"serve", "--addr", addr, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	url := fmt.Sprintf("http://%s/api/v1/overview.json?width=600&height=300", addr)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK && resp.Header.Get("X-Layout") == "5x1"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServeCommandRejectsArgs(t *testing.T) {
	isolate(t)
	assert.Error(t, runCLI(t, "serve", "extra"))
}
