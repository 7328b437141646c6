package api

import (
	"net/http"
	"time"

	"bdvail/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// loggingTransport logs one line per request: method, path, status and
// latency. Bodies are never logged.
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rid := req.Header.Get(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, rid)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	latency := time.Since(start)

	entry := utils.Log.WithFields(logrus.Fields{
		"module":     "http",
		"request_id": rid,
		"method":     req.Method,
		"path":       req.URL.Path,
		"latency_ms": float64(latency.Microseconds()) / 1000.0,
	})
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, err
	}
	entry.WithField("status", resp.StatusCode).Info("request completed")
	return resp, nil
}
