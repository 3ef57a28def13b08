package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catebros/lostfound/internal/domain"
)

// TestLostWalletScenario walks the whole recovery flow: two postings,
// a message, a claim, and the browse view afterwards.
func TestLostWalletScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	aliceAuth, err := f.auth.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	bobAuth, err := f.auth.Register(ctx, RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "alsosecret",
	})
	require.NoError(t, err)
	alice, bob := aliceAuth.User, bobAuth.User

	lost, err := f.items.Post(ctx, alice.ID, alice.ID, PostItemInput{
		Type:        domain.ItemTypeLost,
		Title:       "Black Wallet",
		Description: "Leather wallet, student card inside",
		Category:    "Accessories",
		Location:    "Library",
	})
	require.NoError(t, err)

	found, err := f.items.Post(ctx, bob.ID, bob.ID, PostItemInput{
		Type:        domain.ItemTypeFound,
		Title:       "Wallet",
		Description: "Found a black wallet",
		Category:    "Accessories",
		Location:    "Library Desk",
	})
	require.NoError(t, err)

	_, err = f.messages.Send(ctx, alice.ID, bob.ID, "is this mine?")
	require.NoError(t, err)

	// Bob's inbox shows exactly one conversation, keyed on Alice, with
	// that message as the latest.
	summaries := f.messages.ListConversations(ctx, bob.ID)
	require.Len(t, summaries, 1)
	assert.Equal(t, alice.ID, summaries[0].PartnerID)
	assert.Equal(t, "is this mine?", summaries[0].LastMessage.Content)

	// Bob's found wallet is offered as the claim counterpart.
	candidates, err := f.items.ClaimCandidates(ctx, lost.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.NotNil(t, candidates[0].Item)
	assert.Equal(t, found.ID, candidates[0].Item.ID)

	require.NoError(t, f.items.Claim(ctx, alice.ID, lost.ID, bob.ID, &found.ID))
	assert.Equal(t, domain.ItemStatusResolved, f.store.items[found.ID].Status)

	// The resolved item no longer shows up when Alice browses for
	// matches.
	visible, err := f.items.Browse(ctx, alice.ID, nil)
	require.NoError(t, err)
	for _, it := range visible {
		assert.NotEqual(t, found.ID, it.ID)
	}

	// The system notice reached Bob, and the claim picker still lists
	// only Alice as a human partner.
	bobSummaries := f.messages.ListConversations(ctx, bob.ID)
	assert.Len(t, bobSummaries, 2)
	partners := f.messages.ListPartners(ctx, bob.ID)
	require.Len(t, partners, 1)
	assert.Equal(t, alice.ID, partners[0].ID)
}
