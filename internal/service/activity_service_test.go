package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catebros/lostfound/internal/domain"
)

func TestActivityServiceListRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.addUser("alice", domain.RoleUser)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.store.logs = []domain.ActivityLog{
		{UserID: alice.ID, Action: domain.ActionLogin, CreatedAt: base},
		{UserID: alice.ID, Action: domain.ActionPostItem, CreatedAt: base.Add(time.Hour)},
		{UserID: alice.ID, Action: domain.ActionLogout, CreatedAt: base.Add(48 * time.Hour)},
	}

	entries, err := f.activity.ListRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionLogin, entries[0].Action)
	assert.Equal(t, domain.ActionPostItem, entries[1].Action)

	empty, err := f.activity.ListRange(ctx, base.Add(3*time.Hour), base.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
