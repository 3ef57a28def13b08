package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
	"github.com/catebros/lostfound/internal/repository"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemFieldsMissing = errors.New("title, description, category and location are required")
	ErrInvalidItemType   = errors.New("item type must be LOST or FOUND")
	ErrNotItemOwner      = errors.New("only the item owner can perform this action")
	ErrItemNotActive     = errors.New("item is not active")
	ErrPostOnBehalf      = errors.New("only admins can post items on behalf of another user")
	ErrWrongCounterpart  = errors.New("counterpart item must be an active item of the opposite type")
)

type ItemService struct {
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
	messageRepo  repository.MessageRepository
	activityRepo repository.ActivityRepository
	notifier     Notifier
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	activityRepo repository.ActivityRepository,
) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		messageRepo:  messageRepo,
		activityRepo: activityRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *ItemService) SetNotifier(n Notifier) {
	s.notifier = n
}

type PostItemInput struct {
	Type        domain.ItemType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	ImagePath   *string         `json:"image_path,omitempty"`
	DateLost    *time.Time      `json:"date_lost,omitempty"`
	Reward      *float64        `json:"reward,omitempty"`
	DateFound   *time.Time      `json:"date_found,omitempty"`
}

type UpdateItemInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	ImagePath   *string    `json:"image_path,omitempty"`
	DateLost    *time.Time `json:"date_lost,omitempty"`
	Reward      *float64   `json:"reward,omitempty"`
	DateFound   *time.Time `json:"date_found,omitempty"`
}

// Post creates an item owned by ownerID. The actor and the owner may
// only differ for admin actors posting on behalf of another user.
func (s *ItemService) Post(ctx context.Context, actorID, ownerID uuid.UUID, input PostItemInput) (*domain.Item, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidItemType
	}
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.Location) == "" {
		return nil, ErrItemFieldsMissing
	}

	if ownerID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if actor == nil || actor.Role != domain.RoleAdmin {
			return nil, ErrPostOnBehalf
		}
	}

	item := &domain.Item{
		ID:          uuid.New(),
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		PostedAt:    time.Now(),
		Status:      domain.ItemStatusActive,
		OwnerID:     ownerID,
		ImagePath:   input.ImagePath,
	}
	switch input.Type {
	case domain.ItemTypeLost:
		item.DateLost = input.DateLost
		item.Reward = input.Reward
	case domain.ItemTypeFound:
		item.DateFound = input.DateFound
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	recordActivity(ctx, s.activityRepo, actorID, domain.ActionPostItem, "posted item "+item.Title)
	return item, nil
}

// Update edits an item. The caller already validated the form; no
// re-validation happens here.
func (s *ItemService) Update(ctx context.Context, actorID, itemID uuid.UUID, input UpdateItemInput) (*domain.Item, error) {
	item, err := s.authorizeOwner(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Category = input.Category
	item.Location = input.Location
	item.ImagePath = input.ImagePath
	switch item.Type {
	case domain.ItemTypeLost:
		item.DateLost = input.DateLost
		item.Reward = input.Reward
	case domain.ItemTypeFound:
		item.DateFound = input.DateFound
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	recordActivity(ctx, s.activityRepo, actorID, domain.ActionUpdateItem, "updated item "+item.Title)
	return item, nil
}

// Delete removes an item. The lookup runs first so the log line can
// name the item; the audit entry is written only when both the lookup
// and the deletion succeeded.
func (s *ItemService) Delete(ctx context.Context, actorID, itemID uuid.UUID) error {
	item, err := s.authorizeOwner(ctx, actorID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	recordActivity(ctx, s.activityRepo, actorID, domain.ActionDeleteItem,
		fmt.Sprintf("deleted item %s of user %s", item.Title, item.OwnerID))
	return nil
}

func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error) {
	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// Search applies the criteria predicate over the whole collection. A
// nil criteria matches every item.
func (s *ItemService) Search(ctx context.Context, criteria *domain.SearchCriteria) ([]domain.Item, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []domain.Item{}
	for _, it := range items {
		if it.Matches(criteria) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

// Browse is the "items to match against" view: Search minus the
// viewer's own items and minus anything already resolved.
func (s *ItemService) Browse(ctx context.Context, viewerID uuid.UUID, criteria *domain.SearchCriteria) ([]domain.Item, error) {
	items, err := s.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	visible := []domain.Item{}
	for _, it := range items {
		if it.OwnerID == viewerID || it.Status == domain.ItemStatusResolved {
			continue
		}
		visible = append(visible, it)
	}
	return visible, nil
}

// ClaimCandidate is one selectable entry in the claim counterpart
// picker. The sentinel entry carries no item and means "claim without
// linking a second listing".
type ClaimCandidate struct {
	Item  *domain.Item `json:"item,omitempty"`
	Label string       `json:"label"`
}

const noCounterpartLabel = "No published item"

// ClaimCandidates lists the counterpart user's ACTIVE items of the
// opposite type to the claimant's item, always followed by the
// sentinel option.
func (s *ItemService) ClaimCandidates(ctx context.Context, claimItemID, counterpartUserID uuid.UUID) ([]ClaimCandidate, error) {
	claimItem, err := s.itemRepo.GetByID(ctx, claimItemID)
	if err != nil {
		return nil, err
	}
	if claimItem == nil {
		return nil, ErrItemNotFound
	}

	wanted := claimItem.Type.Opposite()
	items, err := s.itemRepo.ListByOwner(ctx, counterpartUserID)
	if err != nil {
		return nil, err
	}

	var candidates []ClaimCandidate
	for _, it := range items {
		if it.Status != domain.ItemStatusActive || it.Type != wanted {
			continue
		}
		item := it
		candidates = append(candidates, ClaimCandidate{Item: &item, Label: item.Title})
	}
	candidates = append(candidates, ClaimCandidate{Label: noCounterpartLabel})
	return candidates, nil
}

// Claim cross-resolves the claimant's item against a counterpart item.
// With a counterpart selected both items move to RESOLVED; with the
// sentinel (counterpartItemID nil) no status changes, the counterpart
// user is only notified. Either way a system message tells the
// counterpart user who claimed.
func (s *ItemService) Claim(ctx context.Context, claimantID, claimItemID, counterpartUserID uuid.UUID, counterpartItemID *uuid.UUID) error {
	claimItem, err := s.itemRepo.GetByID(ctx, claimItemID)
	if err != nil {
		return err
	}
	if claimItem == nil {
		return ErrItemNotFound
	}
	if claimItem.OwnerID != claimantID {
		return ErrNotItemOwner
	}
	if claimItem.Status != domain.ItemStatusActive {
		return ErrItemNotActive
	}

	claimant, err := s.userRepo.GetByID(ctx, claimantID)
	if err != nil {
		return err
	}
	if claimant == nil {
		return ErrUserNotFound
	}

	if counterpartItemID != nil && *counterpartItemID != uuid.Nil {
		counterpart, err := s.itemRepo.GetByID(ctx, *counterpartItemID)
		if err != nil {
			return err
		}
		if counterpart == nil {
			return ErrItemNotFound
		}
		if counterpart.OwnerID != counterpartUserID ||
			counterpart.Status != domain.ItemStatusActive ||
			counterpart.Type != claimItem.Type.Opposite() {
			return ErrWrongCounterpart
		}

		counterpart.Resolve()
		if err := s.itemRepo.Update(ctx, counterpart); err != nil {
			return fmt.Errorf("resolving counterpart item: %w", err)
		}

		claimItem.Resolve()
		if err := s.itemRepo.Update(ctx, claimItem); err != nil {
			return fmt.Errorf("resolving claimed item: %w", err)
		}

		if s.notifier != nil {
			s.notifier.NotifyItemResolved(counterpart)
			s.notifier.NotifyItemResolved(claimItem)
		}

		s.sendClaimNotice(ctx, counterpartUserID, fmt.Sprintf(
			"%s claimed %q against your item %q. Both items are now resolved.",
			claimant.Username, claimItem.Title, counterpart.Title))

		recordActivity(ctx, s.activityRepo, claimantID, domain.ActionClaimItem,
			fmt.Sprintf("claimed item %s against %s", claimItem.Title, counterpart.Title))
		return nil
	}

	// Sentinel claim: no counterpart listing exists, so no statuses
	// change. The counterpart user is only notified.
	s.sendClaimNotice(ctx, counterpartUserID, fmt.Sprintf(
		"%s claimed %q with you. Get in touch to arrange the handover.",
		claimant.Username, claimItem.Title))

	recordActivity(ctx, s.activityRepo, claimantID, domain.ActionClaimItem,
		"claimed item "+claimItem.Title+" without a counterpart listing")
	return nil
}

// sendClaimNotice delivers an automated message from the system sender.
// Delivery is best-effort; a failed notice does not undo the claim.
func (s *ItemService) sendClaimNotice(ctx context.Context, receiverID uuid.UUID, content string) {
	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   domain.SystemUserID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		log.Printf("claim: sending notice to %s: %v", receiverID, err)
		return
	}
	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}
}

// authorizeOwner loads the item and checks the actor may modify it:
// the owner themselves, or a staff user.
func (s *ItemService) authorizeOwner(ctx context.Context, actorID, itemID uuid.UUID) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.OwnerID == actorID {
		return item, nil
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.Role.IsStaff() {
		return nil, ErrNotItemOwner
	}
	return item, nil
}
