package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradebot/pkg/metrics"
)

func TestPrometheusServer(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := metrics.NewPrometheusServer("127.0.0.1:18098")

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	var resp *http.Response
	var err error

	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://127.0.0.1:18098/metrics")
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
	rq.Contains(string(body), "go_goroutines")

	cancel()
	rq.NoError(<-done)
}
