// Package repository implements data access behind per-entity interfaces,
// keeping gorm out of the service layer.
package repository

import (
	"time"

	"apna_room_server/internal/model"
)

// UserRepository accesses account rows (read-mostly from the core's view).
type UserRepository interface {
	Create(user *model.User) error
	FindByUuid(uuid string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
}

// ListingRepository accesses listings.
type ListingRepository interface {
	Create(listing *model.Listing) error
	FindByUuid(uuid string) (*model.Listing, error)
	FindByListerId(listerId string) ([]model.Listing, error)
}

// PreferenceRepository accesses seeker preferences.
type PreferenceRepository interface {
	FindByUserId(userId string) (*model.SeekerPreferences, error)
	Upsert(prefs *model.SeekerPreferences) error
}

// MatchRepository accesses match records.
type MatchRepository interface {
	// Upsert inserts a match or, when the (seeker, listing) pair exists,
	// overwrites its score and status.
	Upsert(match *model.Match) error
	FindById(id uint) (*model.Match, error)
	FindBySeekerAndListing(seekerId, listingId string) (*model.Match, error)
	// FindBySeekerId pages a seeker's matches ordered by score descending.
	FindBySeekerId(seekerId string, offset, limit int) ([]model.Match, int64, error)
	// FindByListingIds pages matches over a lister's listings ordered by
	// score descending.
	FindByListingIds(listingIds []string, offset, limit int) ([]model.Match, int64, error)
	UpdateStatus(id uint, status string) error
}

// ConversationRepository accesses two-party chat threads.
type ConversationRepository interface {
	Create(conv *model.Conversation) error
	FindByUuid(uuid string) (*model.Conversation, error)
	// FindByParticipants looks the pair up in both orders.
	FindByParticipants(userOneId, userTwoId string) (*model.Conversation, error)
	// FindByUserId lists a user's conversations, most recent message first.
	FindByUserId(userId string) ([]model.Conversation, error)
	UpdateLastMessageAt(uuid string, at time.Time) error
}

// MessageRepository accesses chat messages.
type MessageRepository interface {
	Create(message *model.Message) error
	FindByConversationId(conversationId string) ([]model.Message, error)
	// MarkRead flips the read flag for the given message uuids scoped to one
	// conversation; ids belonging to other conversations are left untouched.
	MarkRead(conversationId string, messageIds []int64) error
	// MarkAllReadFromOther marks every unread message in the conversation
	// that was not sent by readerId.
	MarkAllReadFromOther(conversationId, readerId string) error
}

// SavedListingRepository accesses favourites.
type SavedListingRepository interface {
	// Create saves a favourite; a duplicate pair is rejected with
	// CodeInvalidParam.
	Create(saved *model.SavedListing) error
	Delete(userId, listingId string) error
	FindByUserId(userId string, offset, limit int) ([]model.SavedListing, int64, error)
}
