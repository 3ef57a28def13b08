package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/catebros/lostfound/internal/service"
)

// ActivityHandler serves the admin audit-log view.
type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from := time.Time{}
	to := time.Now()
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_RANGE", "from must be RFC 3339")
			return
		}
		from = ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_RANGE", "to must be RFC 3339")
			return
		}
		to = ts
	}

	entries, err := h.activityService.ListRange(r.Context(), from, to)
	if err != nil {
		log.Printf("ERROR list activity: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
