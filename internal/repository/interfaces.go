package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// PromoteWithCascade applies the user update and, in the same
	// transaction, deletes the user's items and every message where the
	// user is an endpoint. Used when the role changes from USER to a
	// staff role. Any failure rolls the whole transaction back.
	PromoteWithCascade(ctx context.Context, user *domain.User) error

	// DeleteCascade removes the user's messages, items, and activity
	// logs together with the user row in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	ListRange(ctx context.Context, from, to time.Time) ([]domain.ActivityLog, error)
}
