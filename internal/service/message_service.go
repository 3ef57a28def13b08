package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
	"github.com/catebros/lostfound/internal/repository"
)

var (
	ErrEmptyMessage = errors.New("message content is empty")
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyItemResolved(item *domain.Item)
}

// MessageService owns the conversation model. Conversations are not
// persisted: they are derived on every call from the flat message set,
// grouped from the viewer's perspective by the other participant.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Send persists a message between two users. Self-messages are
// permitted; they produce a degenerate conversation with oneself.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     time.Now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}

	return msg, nil
}

// ListConversations returns the viewer's conversation list, most
// recent first. The system sender appears here under its fixed display
// label. Reads soft-fail: a storage error yields an empty list.
func (s *MessageService) ListConversations(ctx context.Context, viewerID uuid.UUID) []domain.ConversationSummary {
	messages, err := s.messageRepo.ListByUser(ctx, viewerID)
	if err != nil {
		log.Printf("conversations: listing messages for %s: %v", viewerID, err)
		return []domain.ConversationSummary{}
	}

	summaries := domain.SummarizeConversations(viewerID, messages)
	for i := range summaries {
		summaries[i].PartnerName = s.partnerName(ctx, summaries[i].PartnerID)
	}
	if summaries == nil {
		summaries = []domain.ConversationSummary{}
	}
	return summaries
}

// ListPartners returns the viewer's human conversation partners only.
// The system sender is excluded; this feeds the claim counterpart
// picker.
func (s *MessageService) ListPartners(ctx context.Context, viewerID uuid.UUID) []domain.User {
	partners := []domain.User{}
	for _, summary := range s.ListConversations(ctx, viewerID) {
		if domain.IsSystemUser(summary.PartnerID) {
			continue
		}
		user, err := s.userRepo.GetByID(ctx, summary.PartnerID)
		if err != nil || user == nil {
			continue
		}
		partners = append(partners, *user)
	}
	return partners
}

// Thread returns the chronological message thread between a and b. The
// result is identical regardless of argument order. Reads soft-fail to
// an empty thread.
func (s *MessageService) Thread(ctx context.Context, a, b uuid.UUID) []domain.Message {
	aMsgs, err := s.messageRepo.ListByUser(ctx, a)
	if err != nil {
		log.Printf("thread: listing messages for %s: %v", a, err)
		return []domain.Message{}
	}
	bMsgs, err := s.messageRepo.ListByUser(ctx, b)
	if err != nil {
		log.Printf("thread: listing messages for %s: %v", b, err)
		return []domain.Message{}
	}

	thread := domain.ThreadBetween(a, b, append(aMsgs, bMsgs...))
	if thread == nil {
		thread = []domain.Message{}
	}
	return thread
}

// DeleteThread physically removes every message between a and b. An
// empty thread is a successful no-op. Deletions are per-message with no
// rollback: the call reports success only when every single delete
// succeeded, but messages already deleted stay deleted. Callers use
// this to clean up auto-opened threads the viewer never wrote to, and
// must not call it on a thread that had pre-existing history.
func (s *MessageService) DeleteThread(ctx context.Context, a, b uuid.UUID) error {
	thread := s.Thread(ctx, a, b)
	if len(thread) == 0 {
		return nil
	}

	var failed int
	for _, m := range thread {
		if err := s.messageRepo.Delete(ctx, m.ID); err != nil {
			log.Printf("thread: deleting message %s: %v", m.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("deleting thread: %d of %d messages failed", failed, len(thread))
	}
	return nil
}

func (s *MessageService) partnerName(ctx context.Context, partnerID uuid.UUID) string {
	if domain.IsSystemUser(partnerID) {
		return domain.SystemDisplayName
	}
	user, err := s.userRepo.GetByID(ctx, partnerID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
