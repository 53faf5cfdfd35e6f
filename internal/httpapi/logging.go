package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	maxLogBytes  int
	bytesWritten int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytesWritten += n

	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		chunk := p[:n]
		if len(chunk) > remaining {
			chunk = chunk[:remaining]
			r.truncated = true
		}
		r.logBody.Write(chunk)
	} else if n > 0 {
		r.truncated = true
	}

	return n, err
}

// withRequestLogging logs method, path, status, size and duration of each
// request. When debug is set the first maxLogBytes of the response body are
// logged too.
func withRequestLogging(next http.Handler, logger *log.Logger, maxLogBytes int, debug bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxLogBytes,
		}
		if !debug {
			recorder.maxLogBytes = 0
		}

		next.ServeHTTP(recorder, r)

		logger.Printf("%s %s -> %d (%d bytes) in %s",
			r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, time.Since(start).Round(time.Microsecond))
		if debug && recorder.logBody.Len() > 0 {
			suffix := ""
			if recorder.truncated {
				suffix = " ...(truncated)"
			}
			logger.Printf("response body: %s%s", bytes.TrimSpace(recorder.logBody.Bytes()), suffix)
		}
	})
}
