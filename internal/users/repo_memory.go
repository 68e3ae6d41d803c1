package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) EnsureFromIdentity(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.Subject]; ok {
		return cloneUser(existing), nil
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Skills == nil {
		user.Skills = []string{}
	}
	r.users[user.Subject] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *MemoryRepo) GetBySubject(ctx context.Context, subject string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[subject]
	if !ok {
		return User{}, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, subject string, profile Profile) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[subject]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Industry = profile.Industry
	user.Experience = profile.Experience
	user.Skills = append([]string{}, profile.Skills...)
	user.Bio = profile.Bio
	user.UpdatedAt = time.Now().UTC()
	r.users[subject] = cloneUser(user)
	return cloneUser(user), nil
}

func cloneUser(u User) User {
	if u.Skills != nil {
		u.Skills = append([]string{}, u.Skills...)
	}
	if u.Experience != nil {
		exp := *u.Experience
		u.Experience = &exp
	}
	return u
}
