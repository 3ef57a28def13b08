package domain

import (
	"github.com/google/uuid"
)

// PairKey returns the canonical key for the unordered pair {a, b}: the
// two ids ordered lexicographically and joined, so {a,b} and {b,a}
// collide to the same key.
func PairKey(a, b uuid.UUID) string {
	u1, u2 := a.String(), b.String()
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	return u1 + ":" + u2
}

// ConversationSummary is one entry in a viewer's conversation list.
// Conversations are not persisted; summaries are derived from the flat
// message set, keyed from the viewer's perspective by the other
// participant only.
type ConversationSummary struct {
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	LastMessage Message   `json:"last_message"`
}

// SummarizeConversations groups the viewer's messages by the other
// participant and keeps the most recent message per group. Messages not
// involving the viewer are skipped. The result is sorted most recent
// first; groups whose last messages carry equal timestamps keep their
// first-seen order.
func SummarizeConversations(viewerID uuid.UUID, messages []Message) []ConversationSummary {
	index := make(map[uuid.UUID]int)
	var summaries []ConversationSummary

	for _, m := range messages {
		if !m.InvolvedWith(viewerID) {
			continue
		}
		partner := m.OtherParticipant(viewerID)
		if i, ok := index[partner]; ok {
			if m.SentAt.After(summaries[i].LastMessage.SentAt) {
				summaries[i].LastMessage = m
			}
			continue
		}
		index[partner] = len(summaries)
		summaries = append(summaries, ConversationSummary{
			PartnerID:   partner,
			LastMessage: m,
		})
	}

	// Insertion sort keeps equal-timestamp groups in first-seen order.
	for i := 1; i < len(summaries); i++ {
		for j := i; j > 0 && summaries[j].LastMessage.SentAt.After(summaries[j-1].LastMessage.SentAt); j-- {
			summaries[j], summaries[j-1] = summaries[j-1], summaries[j]
		}
	}
	return summaries
}

// ThreadBetween filters messages down to those whose endpoints are
// exactly {a, b}, deduplicates by message id, and orders them
// chronologically. The per-user fetches that feed it may both contain
// the same message, so duplicates are expected.
func ThreadBetween(a, b uuid.UUID, messages []Message) []Message {
	seen := make(map[uuid.UUID]struct{})
	var thread []Message
	for _, m := range messages {
		if !m.Between(a, b) {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		thread = append(thread, m)
	}
	for i := 1; i < len(thread); i++ {
		for j := i; j > 0 && thread[j].SentAt.Before(thread[j-1].SentAt); j-- {
			thread[j], thread[j-1] = thread[j-1], thread[j]
		}
	}
	return thread
}
