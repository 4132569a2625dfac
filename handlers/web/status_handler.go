// handlers/web/status_handler.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"cmdbridge/interfaces"
	"cmdbridge/storage"

	"github.com/gorilla/mux"
)

type StatusHandler struct {
	log   interfaces.Logger
	store interfaces.DataStore
}

func NewStatusHandler(log interfaces.Logger, store interfaces.DataStore) *StatusHandler {
	return &StatusHandler{log: log, store: store}
}

// Health reports whether the database is reachable.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.PingDB(); err != nil {
		h.log.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats reports how many replies the ledger holds.
func (h *StatusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CountReplies()
	if err != nil {
		h.log.Error("Failed to count replies", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"replies": count})
}

// Reply returns the ledger record of one command message.
func (h *StatusHandler) Reply(w http.ResponseWriter, r *http.Request) {
	sourceID := mux.Vars(r)["sourceID"]
	rec, err := h.store.GetReply(sourceID)
	if errors.Is(err, storage.ErrReplyNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reply not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to get reply", "error", err, "sourceID", sourceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
