package httpx_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"tradebot/pkg/contextx"
	"tradebot/pkg/httpx"
	"tradebot/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestLoggingRoundTripper(t *testing.T) {
	const testResponseBody = `{"sku":"5021;6","token":"qwerty"}`

	testCases := []struct {
		name        string
		handlerFunc http.HandlerFunc
		opts        []httpx.Option
		statusCode  int
		check       func(rq *require.Assertions, req, resp string)
	}{
		{
			name: "status 200",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			statusCode: http.StatusOK,
			check: func(rq *require.Assertions, req, resp string) {
				rq.Contains(req, "GET / HTTP/1.1")
				rq.Contains(resp, "HTTP/1.1 200 OK")
			},
		},
		{
			name: "status 404 with body",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(testResponseBody))
			},
			statusCode: http.StatusNotFound,
			check: func(rq *require.Assertions, _, resp string) {
				rq.Contains(resp, "HTTP/1.1 404 Not Found")
				rq.Contains(resp, testResponseBody)
			},
		},
		{
			name: "status 200 masked",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody))
			},
			opts:       []httpx.Option{httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker())},
			statusCode: http.StatusOK,
			check: func(rq *require.Assertions, _, resp string) {
				rq.Contains(resp, `"token":"[MASKED]"`)
				rq.NotContains(resp, "qwerty")
			},
		},
		{
			name: "truncated dumps",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody))
			},
			opts:       []httpx.Option{httpx.WithLogFieldMaxLen(10)},
			statusCode: http.StatusOK,
			check: func(rq *require.Assertions, req, resp string) {
				rq.Equal("GET / HTTP", req)
				rq.Equal("HTTP/1.1 2", resp)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			server := httptest.NewServer(tc.handlerFunc)
			defer server.Close()

			var logBuffer bytes.Buffer
			testLogger := slog.New(slog.NewJSONHandler(&logBuffer, nil))
			ctx := contextx.WithLogger(context.Background(), testLogger)

			client := &http.Client{
				Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, tc.opts...),
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, http.NoBody)
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)
			resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			logLines := bytes.Split(bytes.TrimSpace(logBuffer.Bytes()), []byte("\n"))
			rq.Len(logLines, 2)

			var request, response map[string]any

			rq.NoError(json.Unmarshal(logLines[0], &request))
			rq.NoError(json.Unmarshal(logLines[1], &response))

			tc.check(
				rq,
				request[logx.FieldRequestBody].(string),
				response[logx.FieldResponseBody].(string),
			)

			_, ok := response[logx.FieldDurationMs].(float64)
			rq.True(ok)

			const xidLen = 20

			rq.Len(request[logx.FieldRequestID], xidLen)
			rq.Len(response[logx.FieldRequestID], xidLen)
		})
	}
}
