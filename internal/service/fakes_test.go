package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
)

var errStorage = errors.New("storage failure")

// fakeStore is shared backing state for the fake repositories, so the
// cascade operations can touch users, items, messages and logs the way
// the real transactions do.
type fakeStore struct {
	users    map[uuid.UUID]*domain.User
	items    map[uuid.UUID]*domain.Item
	messages []domain.Message
	logs     []domain.ActivityLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[uuid.UUID]*domain.User),
		items: make(map[uuid.UUID]*domain.Item),
	}
}

type fakeUserRepo struct {
	s *fakeStore

	// failPromote and failDelete make the cascade operations fail
	// before any mutation, matching a rolled-back transaction.
	failPromote bool
	failDelete  bool
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	u := *user
	r.s.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return errStorage
	}
	u := *user
	r.s.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) PromoteWithCascade(_ context.Context, user *domain.User) error {
	if r.failPromote {
		return errStorage
	}
	r.deleteItemsOf(user.ID)
	r.deleteMessagesOf(user.ID)
	u := *user
	r.s.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if r.failDelete {
		return errStorage
	}
	r.deleteMessagesOf(id)
	r.deleteItemsOf(id)
	kept := r.s.logs[:0]
	for _, l := range r.s.logs {
		if l.UserID != id {
			kept = append(kept, l)
		}
	}
	r.s.logs = kept
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) deleteItemsOf(ownerID uuid.UUID) {
	for id, it := range r.s.items {
		if it.OwnerID == ownerID {
			delete(r.s.items, id)
		}
	}
}

func (r *fakeUserRepo) deleteMessagesOf(userID uuid.UUID) {
	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if !m.InvolvedWith(userID) {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
}

type fakeItemRepo struct {
	s *fakeStore

	failUpdate map[uuid.UUID]bool
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item) error {
	it := *item
	r.s.items[it.ID] = &it
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	if it, ok := r.s.items[id]; ok {
		copied := *it
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *domain.Item) error {
	if r.failUpdate[item.ID] {
		return errStorage
	}
	if _, ok := r.s.items[item.ID]; !ok {
		return errStorage
	}
	it := *item
	r.s.items[it.ID] = &it
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.items, id)
	return nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Item, error) {
	var items []domain.Item
	for _, it := range r.s.items {
		if it.OwnerID == ownerID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PostedAt.After(items[j].PostedAt) })
	return items, nil
}

func (r *fakeItemRepo) ListAll(_ context.Context) ([]domain.Item, error) {
	var items []domain.Item
	for _, it := range r.s.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PostedAt.After(items[j].PostedAt) })
	return items, nil
}

type fakeMessageRepo struct {
	s *fakeStore

	failList   bool
	failDelete map[uuid.UUID]bool
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Message, error) {
	if r.failList {
		return nil, errStorage
	}
	var messages []domain.Message
	for _, m := range r.s.messages {
		if m.InvolvedWith(userID) {
			messages = append(messages, m)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].SentAt.Before(messages[j].SentAt) })
	return messages, nil
}

func (r *fakeMessageRepo) ListAll(_ context.Context) ([]domain.Message, error) {
	if r.failList {
		return nil, errStorage
	}
	messages := make([]domain.Message, len(r.s.messages))
	copy(messages, r.s.messages)
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].SentAt.Before(messages[j].SentAt) })
	return messages, nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.failDelete[id] {
		return errStorage
	}
	for i, m := range r.s.messages {
		if m.ID == id {
			r.s.messages = append(r.s.messages[:i], r.s.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeActivityRepo struct {
	s *fakeStore
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *domain.ActivityLog) error {
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (r *fakeActivityRepo) ListRange(_ context.Context, from, to time.Time) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	for _, e := range r.s.logs {
		if e.CreatedAt.Before(from) || e.CreatedAt.After(to) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// fixture wires every service over one shared fake store.
type fixture struct {
	store        *fakeStore
	userRepo     *fakeUserRepo
	itemRepo     *fakeItemRepo
	messageRepo  *fakeMessageRepo
	activityRepo *fakeActivityRepo

	auth     *AuthService
	users    *UserService
	items    *ItemService
	messages *MessageService
	activity *ActivityService
}

func newFixture() *fixture {
	store := newFakeStore()
	userRepo := &fakeUserRepo{s: store}
	itemRepo := &fakeItemRepo{s: store, failUpdate: make(map[uuid.UUID]bool)}
	messageRepo := &fakeMessageRepo{s: store, failDelete: make(map[uuid.UUID]bool)}
	activityRepo := &fakeActivityRepo{s: store}

	return &fixture{
		store:        store,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		messageRepo:  messageRepo,
		activityRepo: activityRepo,
		auth:         NewAuthService(userRepo, activityRepo, "test-secret"),
		users:        NewUserService(userRepo, activityRepo),
		items:        NewItemService(itemRepo, userRepo, messageRepo, activityRepo),
		messages:     NewMessageService(messageRepo, userRepo),
		activity:     NewActivityService(activityRepo),
	}
}

func (f *fixture) addUser(username string, role domain.Role) *domain.User {
	user := &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
	f.store.users[user.ID] = user
	return user
}

func (f *fixture) addItem(owner *domain.User, itemType domain.ItemType, title string) *domain.Item {
	item := &domain.Item{
		ID:          uuid.New(),
		Type:        itemType,
		Title:       title,
		Description: title + " description",
		Category:    "Misc",
		Location:    "Somewhere",
		PostedAt:    time.Now(),
		Status:      domain.ItemStatusActive,
		OwnerID:     owner.ID,
	}
	f.store.items[item.ID] = item
	return item
}

func (f *fixture) addMessage(sender, receiver uuid.UUID, content string, sentAt time.Time) *domain.Message {
	msg := domain.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		SentAt:     sentAt,
	}
	f.store.messages = append(f.store.messages, msg)
	return &msg
}

func (f *fixture) actions() []string {
	var actions []string
	for _, l := range f.store.logs {
		actions = append(actions, l.Action)
	}
	return actions
}
