package memory

import (
	"context"
	"sort"
	"strings"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// taken must be called with the lock held.
func (r *userRepository) taken(user *entity.User) error {
	for _, u := range r.store.users {
		if u.ID == user.ID {
			continue
		}
		if u.Email == user.Email {
			return errors.Conflict("Email already in use")
		}
		if strings.EqualFold(u.Username, user.Username) {
			return errors.Conflict("Username already taken")
		}
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	if err := r.taken(user); err != nil {
		return err
	}
	now := r.store.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.filter(func(*entity.User) bool { return true }), nil
}

func (r *userRepository) ListByType(ctx context.Context, userType string) ([]*entity.User, error) {
	return r.filter(func(u *entity.User) bool { return u.UserType == userType }), nil
}

func (r *userRepository) filter(keep func(*entity.User) bool) []*entity.User {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.User, 0)
	for _, u := range r.store.users {
		if keep(u) {
			list = append(list, cloneUser(u))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	if err := r.taken(user); err != nil {
		return err
	}
	user.UpdatedAt = r.store.now()
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return errors.NotFound("User", nil)
	}
	delete(r.store.users, id)
	return nil
}
