// Package service defines the business interfaces the handler layer
// calls, keeping handlers decoupled from concrete implementations.
package service

import (
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/dto/respond"
)

// AuthService handles accounts and token issuance.
type AuthService interface {
	// Register creates an account with a role-checked profile.
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login verifies credentials and returns a token pair.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
}

// MatchService computes compatibility and manages match records and
// saved listings.
type MatchService interface {
	// CalculateCompatibility scores the seeker against a listing and
	// upserts the match, resetting its status to pending.
	CalculateCompatibility(seekerId, listingId string) (*respond.MatchRespond, error)
	// UpdatePreferences replaces the seeker's matching preferences.
	UpdatePreferences(userId string, req request.UpdatePreferencesRequest) error
	// GetSeekerMatches pages a seeker's matches, best score first.
	GetSeekerMatches(seekerId string, page, limit int) (*respond.MatchListRespond, error)
	// GetListerMatches pages matches against the lister's listings.
	GetListerMatches(listerId string, page, limit int) (*respond.MatchListRespond, error)
	// UpdateMatchStatus lets the owning lister respond to a match.
	UpdateMatchStatus(callerId string, matchId uint, status string) error
	// SaveListing adds a listing to the caller's favourites.
	SaveListing(userId, listingId string) error
	// UnsaveListing removes a favourite.
	UnsaveListing(userId, listingId string) error
	// GetSavedListings pages the caller's favourites, newest first.
	GetSavedListings(userId string, page, limit int) (*respond.SavedListingListRespond, error)
}

// ConversationService handles threads, history and REST messaging.
type ConversationService interface {
	// CreateConversation opens or returns the thread for the pair.
	CreateConversation(callerId string, req request.CreateConversationRequest) (*respond.ConversationRespond, error)
	// GetUserConversations lists the caller's threads, recent first.
	GetUserConversations(userId string) ([]respond.ConversationRespond, error)
	// GetConversationMessages returns the history, oldest first.
	GetConversationMessages(userId, conversationId string) ([]respond.MessageRespond, error)
	// SendMessage persists a message over HTTP.
	SendMessage(userId, conversationId string, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// MarkMessagesAsRead flips read flags, scoped to the conversation.
	MarkMessagesAsRead(userId, conversationId string, req request.MarkReadRequest) error
}
