package probe_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradebot/pkg/probe"
)

func TestProbeServer(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := probe.NewServer("127.0.0.1:18097", probe.Options{
		Name:    "tradebot",
		Version: "test",
	})

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	var resp *http.Response
	var err error

	// Wait for the listener to come up.
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://127.0.0.1:18097/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	rq.NoError(err)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.JSONEq(`{"name":"tradebot","version":"test"}`, string(body))

	cancel()
	rq.NoError(<-done)
}
