package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/fintrack-backend/internal/domain"
)

// userRepository implements domain.UserRepository
type userRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository backed by store
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.emails[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	r.store.users[user.ID] = *user
	r.store.emails[user.Email] = user.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.store.users[id]
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	r.store.users[id] = user
	return nil
}
