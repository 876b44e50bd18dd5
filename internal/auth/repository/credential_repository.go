package repository

import (
	"errors"
	"log"
	"sync"

	authdomain "jobtracker-backend/internal/auth/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository defines the interface for OAuth credential storage
type CredentialRepository interface {
	Save(userID string, cred *authdomain.OAuthCredential) error
	Find(userID string) (*authdomain.OAuthCredential, error)
}

// credentialRepository implements CredentialRepository interface. Store
// failures fall back to a process-local map (lost on restart) instead of
// surfacing to the caller; this is a session store, availability wins over
// durability.
type credentialRepository struct {
	db *gorm.DB

	mu     sync.RWMutex
	memory map[string]*authdomain.OAuthCredential
}

// NewCredentialRepository creates a new instance of credentialRepository
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{
		db:     db,
		memory: make(map[string]*authdomain.OAuthCredential),
	}
}

// Save upserts the credential bundle for a user, overwriting any existing row.
func (r *credentialRepository) Save(userID string, cred *authdomain.OAuthCredential) error {
	cred.UserID = userID

	if r.db != nil {
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(cred).Error
		if err == nil {
			return nil
		}
		log.Printf("[WARN] credential save failed, using in-memory store: %v", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cred
	r.memory[userID] = &copied
	return nil
}

// Find returns the stored bundle for a user, or nil when none exists.
func (r *credentialRepository) Find(userID string) (*authdomain.OAuthCredential, error) {
	if r.db != nil {
		var cred authdomain.OAuthCredential
		err := r.db.Where("user_id = ?", userID).First(&cred).Error
		if err == nil {
			return &cred, nil
		}
		// Not-found falls through to the map: a bundle written during a store
		// outage must remain readable after the store recovers.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] credential lookup failed, using in-memory store: %v", err)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if cred, ok := r.memory[userID]; ok {
		copied := *cred
		return &copied, nil
	}
	return nil, nil
}
