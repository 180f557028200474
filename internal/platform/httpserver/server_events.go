package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"socialdesk/contexts/agency/campaign-service/ports"
)

const heartbeatInterval = 25 * time.Second

// handleCampaignEvents streams campaign lifecycle events for the caller's
// own campaigns as server-sent events. Delivery is best-effort; clients
// are expected to refetch on reconnect.
func (s *Server) handleCampaignEvents(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	if s.events == nil {
		writeError(w, http.StatusNotFound, "Event stream is not enabled")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	events, cancel := s.events.Subscribe(ports.CampaignEventsTopic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			if event.UserID != userID {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, payload)
			flusher.Flush()
		}
	}
}
