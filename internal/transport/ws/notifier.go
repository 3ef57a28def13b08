package ws

import (
	"github.com/catebros/lostfound/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// NotifyNewMessage pushes a new message to both endpoints. The sender
// gets the echo so a second device stays in sync; a self-message
// delivers once.
func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageNew, MessagePayload{
		Message:         *msg,
		ConversationKey: domain.PairKey(msg.SenderID, msg.ReceiverID),
	})
	if err != nil {
		return
	}
	n.hub.SendToUser(msg.ReceiverID, evt)
	if msg.SenderID != msg.ReceiverID && !domain.IsSystemUser(msg.SenderID) {
		n.hub.SendToUser(msg.SenderID, evt)
	}
}

// NotifyItemResolved tells the item owner their listing was resolved by
// a claim.
func (n *HubNotifier) NotifyItemResolved(item *domain.Item) {
	evt, err := NewEvent(EventTypeItemResolved, ItemResolvedPayload{
		ItemID: item.ID,
		Title:  item.Title,
	})
	if err != nil {
		return
	}
	n.hub.SendToUser(item.OwnerID, evt)
}
