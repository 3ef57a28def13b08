package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/service"
	"github.com/catebros/lostfound/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID := middleware.GetUserID(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), senderID, req.ReceiverID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "EMPTY_MESSAGE", "Message content is empty")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Receiver not found")
		default:
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ListConversations returns the viewer's inbox, most recent
// conversation first.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	writeJSON(w, http.StatusOK, h.messageService.ListConversations(r.Context(), viewerID))
}

// ListPartners returns the viewer's human conversation partners (the
// claim counterpart picker source).
func (h *MessageHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	writeJSON(w, http.StatusOK, h.messageService.ListPartners(r.Context(), viewerID))
}

// Thread returns the chronological thread between the viewer and the
// user in the path.
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	otherID, err := uuid.Parse(r.PathValue("user"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	writeJSON(w, http.StatusOK, h.messageService.Thread(r.Context(), viewerID, otherID))
}

// DeleteThread cleans up a thread the viewer auto-opened but never
// wrote to. The client passes the message count it saw when the screen
// opened; a thread with pre-existing history is never deleted.
func (h *MessageHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	otherID, err := uuid.Parse(r.PathValue("user"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	openCount, err := strconv.Atoi(r.URL.Query().Get("open_count"))
	if err != nil || openCount < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_COUNT", "open_count query parameter is required")
		return
	}

	thread := h.messageService.Thread(r.Context(), viewerID, otherID)
	if openCount != 0 || len(thread) != openCount {
		// The thread had history when opened, or grew since. Leave it.
		writeJSON(w, http.StatusOK, map[string]string{"status": "kept"})
		return
	}

	if err := h.messageService.DeleteThread(r.Context(), viewerID, otherID); err != nil {
		log.Printf("ERROR delete thread: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
