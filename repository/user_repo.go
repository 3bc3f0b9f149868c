package repository

import (
	"errors"
	"sync"

	"voicechat-backend/models"
)

var ErrNotFound = errors.New("not found")

// UserRepository is the connection registry: the single source of truth for
// which user identity is attached to which live connection. Lookups return
// copies so callers never hold a reference into the repo's own records.
type UserRepository interface {
	Register(connID, userID, username string) models.User
	FindByConn(connID string) (models.User, error)
	FindByUserID(userID string) (string, models.User, error)
	MarkOffline(connID string) (models.User, error)
	Remove(connID string)
	ListOnline() []models.User
}

type InMemoryUserRepo struct {
	mu     sync.RWMutex
	byConn map[string]*models.User // connID -> user
	order  []string                // connIDs in registration order
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		byConn: make(map[string]*models.User),
	}
}

// Register stores the identity for a connection. Usernames are not required
// to be unique; re-registering on the same connection just updates the name.
func (r *InMemoryUserRepo) Register(connID, userID, username string) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byConn[connID]; ok {
		u.Username = username
		u.Online = true
		return *u
	}
	u := &models.User{ID: userID, Username: username, Online: true}
	r.byConn[connID] = u
	r.order = append(r.order, connID)
	return *u
}

func (r *InMemoryUserRepo) FindByConn(connID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byConn[connID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

// FindByUserID resolves a user id to its current connection. Offline users
// are not resolvable.
func (r *InMemoryUserRepo) FindByUserID(userID string) (string, models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for connID, u := range r.byConn {
		if u.ID == userID && u.Online {
			return connID, *u, nil
		}
	}
	return "", models.User{}, ErrNotFound
}

func (r *InMemoryUserRepo) MarkOffline(connID string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byConn[connID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	u.Online = false
	return *u, nil
}

// Remove drops the record once the connection handle is released.
func (r *InMemoryUserRepo) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byConn[connID]; !ok {
		return
	}
	delete(r.byConn, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ListOnline snapshots every online user in registration order.
func (r *InMemoryUserRepo) ListOnline() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.byConn))
	for _, connID := range r.order {
		if u, ok := r.byConn[connID]; ok && u.Online {
			users = append(users, *u)
		}
	}
	return users
}
