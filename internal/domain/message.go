package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemUserID is the sender of automated messages (claim
// notifications). It is excluded when listing a user's human
// conversation partners but shows up in the inbox under
// SystemDisplayName.
var SystemUserID = uuid.Nil

const SystemDisplayName = "System"

// IsSystemUser reports whether id denotes the automated sender.
func IsSystemUser(id uuid.UUID) bool {
	return id == SystemUserID
}

// Message is a direct message between two users. Deletion is physical;
// there is no tombstone. SentAt defaults to creation time but is
// overwritten when a message is reconstructed from storage so the
// original send order survives round-trips.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}

// InvolvedWith reports whether userID is an endpoint of the message.
func (m *Message) InvolvedWith(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// OtherParticipant returns the endpoint that is not viewerID. For a
// self-message both endpoints equal the viewer and the viewer's own id
// is returned.
func (m *Message) OtherParticipant(viewerID uuid.UUID) uuid.UUID {
	if m.SenderID == viewerID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Between reports whether the message's endpoints are exactly {a, b}
// in either direction.
func (m *Message) Between(a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) ||
		(m.SenderID == b && m.ReceiverID == a)
}
