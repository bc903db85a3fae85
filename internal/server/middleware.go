package server

import (
    "net/http"

    "github.com/google/uuid"
    "github.com/rs/zerolog/log"
)

// withRequestID attaches a request-scoped logger carrying a fresh request id
// so every log line of one request can be correlated.
func withRequestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := uuid.NewString()
        logger := log.With().Str("request_id", id).Str("path", r.URL.Path).Logger()
        w.Header().Set("X-Request-Id", id)
        next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
    })
}

// cors answers preflight requests and stamps the configured origin on every
// response. The editor runs in a browser on a different origin than the API.
func (s *Server) cors(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
        w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}
