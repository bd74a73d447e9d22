package api

import (
	"net/http"
	"strings"

	"hybrid/internal/protocol"
)

// WelcomeHost is served for requests to the bridge root
const WelcomeHost = "welcome"

// registerRoutes registers all bridge routes
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/_health", s.handleHealth)

	// Everything else is a virtual URL: /<host>/<path>
	s.router.HandleFunc("/", s.handleProtocol)
}

// VirtualURL maps a bridge request path onto scheme://<host>/<path>,
// keeping percent-encoding and a trailing slash.
func VirtualURL(scheme string, r *http.Request) string {
	rest := strings.TrimPrefix(r.URL.EscapedPath(), "/")
	if rest == "" {
		rest = WelcomeHost + "/"
	}
	return scheme + "://" + rest
}

// handleProtocol forwards the request to the dispatcher and copies the
// response out verbatim
func (s *Server) handleProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target := VirtualURL(s.config.Scheme, r)

	resp, err := s.dispatcher.Handle(ctx, protocol.Request{URL: target})
	if err != nil {
		s.logger.WarnContext(ctx, "Dispatch failed",
			"url", target,
			"error", err.Error(),
			"requestID", GetRequestID(ctx),
		)
		WriteHybridError(w, err)
		return
	}

	// Direct map assignment keeps header names exactly as the dispatcher spelled them
	header := w.Header()
	for name, value := range resp.Headers {
		header[name] = []string{value}
	}
	w.WriteHeader(resp.StatusCode)

	// WriteTo closes the body even when the client goes away mid-stream
	if _, err := resp.WriteTo(w); err != nil {
		s.logger.DebugContext(ctx, "Response body aborted",
			"url", target,
			"error", err.Error(),
			"requestID", GetRequestID(ctx),
		)
	}
}
