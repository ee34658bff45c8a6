package common

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"

	"flightdesk/airline/internal/logging"
)

// LogHTTPRequest dumps an outbound request at debug level with the
// Authorization header masked. The body is left readable.
func LogHTTPRequest(req *http.Request) {
	var bodyCopy []byte
	if req.Body != nil {
		bodyCopy, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	clone := req.Clone(req.Context())
	if clone.Header.Get("Authorization") != "" {
		clone.Header.Set("Authorization", "Bearer ***")
	}
	if bodyCopy != nil {
		clone.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	dump, err := httputil.DumpRequestOut(clone, true)
	if err != nil {
		logging.Warn("Failed to dump HTTP request", "error", err.Error())
	} else {
		logging.Debug("HTTP request dump", "request", string(dump))
	}

	if bodyCopy != nil {
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
}
