package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"innocrawl/models"
)

// StatusFeed provides per-job snapshot channels.
type StatusFeed interface {
	Subscribe(jobID string) chan models.StatusSnapshot
	Unsubscribe(jobID string, ch chan models.StatusSnapshot)
}

// StatusFeedHandler upgrades feed requests to websocket connections and
// streams each job's status snapshots, server to client only.
type StatusFeedHandler struct {
	feed     StatusFeed
	upgrader websocket.Upgrader
}

// NewStatusFeedHandler constructs the handler with its dependencies.
func NewStatusFeedHandler(feed StatusFeed) *StatusFeedHandler {
	return &StatusFeedHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			// the dev backend serves local tooling; any origin is fine
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Feed handles GET /ws?job_id={id} and the legacy GET /ws/{id}.
func (h *StatusFeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get(JOB_ID_QUERY_ARG)
	if jobID == "" {
		jobID = mux.Vars(r)["id"]
	}
	if jobID == "" {
		http.Error(w, "Invalid argument "+JOB_ID_QUERY_ARG, http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Error upgrading feed connection:", err)
		return
	}

	ch := h.feed.Subscribe(jobID)
	defer h.feed.Unsubscribe(jobID, ch)
	defer conn.Close()

	// drain client frames so closes are noticed; no client messages are
	// defined on this feed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
