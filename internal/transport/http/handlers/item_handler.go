package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
	"github.com/catebros/lostfound/internal/service"
	"github.com/catebros/lostfound/internal/transport/http/middleware"
	"github.com/catebros/lostfound/pkg/validator"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type postItemRequest struct {
	service.PostItemInput
	// OwnerID lets an admin post on behalf of another user; regular
	// callers leave it empty and own the item themselves.
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

func (h *ItemHandler) Post(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	var req postItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateItem(req.Title, req.Description, req.Category, req.Location); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ownerID := actorID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	item, err := h.itemService.Post(r.Context(), actorID, ownerID, req.PostItemInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidItemType):
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", "Item type must be LOST or FOUND")
		case errors.Is(err, service.ErrItemFieldsMissing):
			writeError(w, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
		case errors.Is(err, service.ErrPostOnBehalf):
			writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			log.Printf("ERROR post item: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
		} else {
			log.Printf("ERROR get item: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	var input service.UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	item, err := h.itemService.Update(r.Context(), actorID, itemID, input)
	if err != nil {
		writeItemError(w, "update item", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(r.Context(), actorID, itemID); err != nil {
		writeItemError(w, "delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	items, err := h.itemService.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list items: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Search is the unfiltered search over all items, including resolved
// ones. It backs the staff moderation view and is staff-gated at the
// route level.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria := criteriaFromQuery(r)
	items, err := h.itemService.Search(r.Context(), criteria)
	if err != nil {
		log.Printf("ERROR search items: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Browse is the match-against view: search excluding the viewer's own
// items and anything already resolved.
func (h *ItemHandler) Browse(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	criteria := criteriaFromQuery(r)
	items, err := h.itemService.Browse(r.Context(), userID, criteria)
	if err != nil {
		log.Printf("ERROR browse items: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) ClaimCandidates(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}
	counterpartID, err := uuid.Parse(r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid counterpart user ID")
		return
	}

	candidates, err := h.itemService.ClaimCandidates(r.Context(), itemID, counterpartID)
	if err != nil {
		writeItemError(w, "claim candidates", err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

type claimRequest struct {
	CounterpartUserID uuid.UUID  `json:"counterpart_user_id"`
	CounterpartItemID *uuid.UUID `json:"counterpart_item_id,omitempty"`
}

func (h *ItemHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claimantID := middleware.GetUserID(r.Context())
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	err = h.itemService.Claim(r.Context(), claimantID, itemID, req.CounterpartUserID, req.CounterpartItemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCounterpart):
			writeError(w, http.StatusConflict, "WRONG_COUNTERPART", err.Error())
		case errors.Is(err, service.ErrItemNotActive):
			writeError(w, http.StatusConflict, "NOT_ACTIVE", err.Error())
		default:
			writeItemError(w, "claim", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "claimed"})
}

func writeItemError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
	case errors.Is(err, service.ErrNotItemOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

func criteriaFromQuery(r *http.Request) *domain.SearchCriteria {
	q := r.URL.Query()
	criteria := &domain.SearchCriteria{
		Keywords: q.Get("keywords"),
		Category: q.Get("category"),
		Location: q.Get("location"),
	}
	if t := q.Get("type"); t != "" {
		criteria.Type = domain.ItemType(t)
	}
	if from := q.Get("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			criteria.FromDate = &ts
		}
	}
	if to := q.Get("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			criteria.ToDate = &ts
		}
	}
	return criteria
}
