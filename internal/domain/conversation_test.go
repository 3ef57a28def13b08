package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(sender, receiver uuid.UUID, sentAt time.Time) Message {
	return Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    "hello",
		SentAt:     sentAt,
	}
}

func TestPairKeySymmetry(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, PairKey(a, b), PairKey(b, a))
	assert.NotEqual(t, PairKey(a, b), PairKey(a, uuid.New()))
}

func TestSummarizeConversations(t *testing.T) {
	viewer := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("groups by other participant regardless of direction", func(t *testing.T) {
		messages := []Message{
			msg(viewer, alice, base),
			msg(alice, viewer, base.Add(time.Minute)),
		}

		summaries := SummarizeConversations(viewer, messages)
		require.Len(t, summaries, 1)
		assert.Equal(t, alice, summaries[0].PartnerID)
		assert.Equal(t, base.Add(time.Minute), summaries[0].LastMessage.SentAt)
	})

	t.Run("sorts by last message descending", func(t *testing.T) {
		messages := []Message{
			msg(viewer, alice, base),
			msg(bob, viewer, base.Add(time.Hour)),
			msg(alice, viewer, base.Add(2*time.Hour)),
		}

		summaries := SummarizeConversations(viewer, messages)
		require.Len(t, summaries, 2)
		assert.Equal(t, alice, summaries[0].PartnerID)
		assert.Equal(t, bob, summaries[1].PartnerID)
	})

	t.Run("keeps first-seen order on equal timestamps", func(t *testing.T) {
		messages := []Message{
			msg(viewer, bob, base),
			msg(viewer, alice, base),
		}

		summaries := SummarizeConversations(viewer, messages)
		require.Len(t, summaries, 2)
		assert.Equal(t, bob, summaries[0].PartnerID)
		assert.Equal(t, alice, summaries[1].PartnerID)
	})

	t.Run("skips messages not involving the viewer", func(t *testing.T) {
		messages := []Message{
			msg(alice, bob, base),
		}

		assert.Empty(t, SummarizeConversations(viewer, messages))
	})

	t.Run("self-messages form a conversation with oneself", func(t *testing.T) {
		messages := []Message{
			msg(viewer, viewer, base),
		}

		summaries := SummarizeConversations(viewer, messages)
		require.Len(t, summaries, 1)
		assert.Equal(t, viewer, summaries[0].PartnerID)
	})
}

func TestThreadBetween(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("symmetric in argument order", func(t *testing.T) {
		messages := []Message{
			msg(a, b, base.Add(time.Minute)),
			msg(b, a, base),
			msg(a, c, base.Add(2*time.Minute)),
		}

		forward := ThreadBetween(a, b, messages)
		backward := ThreadBetween(b, a, messages)
		assert.Equal(t, forward, backward)
		require.Len(t, forward, 2)
	})

	t.Run("chronological ascending", func(t *testing.T) {
		messages := []Message{
			msg(a, b, base.Add(time.Hour)),
			msg(b, a, base),
			msg(a, b, base.Add(30*time.Minute)),
		}

		thread := ThreadBetween(a, b, messages)
		require.Len(t, thread, 3)
		assert.True(t, thread[0].SentAt.Before(thread[1].SentAt))
		assert.True(t, thread[1].SentAt.Before(thread[2].SentAt))
	})

	t.Run("deduplicates messages fetched from both sides", func(t *testing.T) {
		m := msg(a, b, base)
		// The per-user fetches each return the message once.
		thread := ThreadBetween(a, b, []Message{m, m})
		require.Len(t, thread, 1)
		assert.Equal(t, m.ID, thread[0].ID)
	})

	t.Run("excludes third-party messages", func(t *testing.T) {
		messages := []Message{
			msg(a, c, base),
			msg(c, b, base),
		}

		assert.Empty(t, ThreadBetween(a, b, messages))
	})
}
