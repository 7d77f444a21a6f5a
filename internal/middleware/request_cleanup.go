package middleware

import (
	"io"
	"net/http"
)

const (
	// avatar payloads are tiny, 64KiB is plenty
	maxBodyBytes = 64 << 10
	// leftovers bigger than this are closed without being fully read
	maxDrainBytes = 256 << 10
)

// DrainAndCloseRequest caps the request body size, then drains what the
// handler left unread so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}

			next.ServeHTTP(w, r)

			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
