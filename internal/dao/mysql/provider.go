package mysql

import (
	"errors"

	"apna_room_server/internal/dao/mysql/repository"
	"apna_room_server/pkg/errorx"

	"gorm.io/gorm"
)

// Repositories bundles every repository over a shared *gorm.DB so the
// service layer takes one dependency instead of seven.
type Repositories struct {
	db *gorm.DB

	User         repository.UserRepository
	Listing      repository.ListingRepository
	Preference   repository.PreferenceRepository
	Match        repository.MatchRepository
	Conversation repository.ConversationRepository
	Message      repository.MessageRepository
	SavedListing repository.SavedListingRepository
}

// NewRepositories wires all repositories over db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         repository.NewUserRepository(db),
		Listing:      repository.NewListingRepository(db),
		Preference:   repository.NewPreferenceRepository(db),
		Match:        repository.NewMatchRepository(db),
		Conversation: repository.NewConversationRepository(db),
		Message:      repository.NewMessageRepository(db),
		SavedListing: repository.NewSavedListingRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
	if err != nil {
		var codeErr *errorx.CodeError
		if errors.As(err, &codeErr) {
			return err
		}
		return errorx.Wrap(err, errorx.CodeDBError, "transaction failed")
	}
	return nil
}
