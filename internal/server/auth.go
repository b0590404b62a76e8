package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// authorize compares the request's bearer token against the shared
// secret. A single process-wide secret gates the whole channel fabric;
// there is no per-consumer identity, expiry, or rate limiting.
func (s *Server) authorize(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	_, token, found := strings.Cut(header, " ")
	if !found {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) == 1
}
