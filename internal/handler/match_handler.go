package handler

import (
	"strconv"

	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/service"
	"apna_room_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MatchHandler serves compatibility scoring, match listings, match
// responses and saved listings.
type MatchHandler struct {
	svc service.MatchService
}

// NewMatchHandler injects the match service.
func NewMatchHandler(svc service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// pageParams reads ?page= and ?limit= with defaults handled by the
// service layer.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// Calculate handles POST /api/matching/calculate.
func (h *MatchHandler) Calculate(c *gin.Context) {
	var req request.CalculateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.CalculateCompatibility(c.GetString("user_id"), req.ListingId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// UpdatePreferences handles PUT /api/matching/preferences.
func (h *MatchHandler) UpdatePreferences(c *gin.Context) {
	var req request.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.UpdatePreferences(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SeekerMatches handles GET /api/matching/seeker.
func (h *MatchHandler) SeekerMatches(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.GetSeekerMatches(c.GetString("user_id"), page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// ListerMatches handles GET /api/matching/lister.
func (h *MatchHandler) ListerMatches(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.GetListerMatches(c.GetString("user_id"), page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// UpdateMatchStatus handles PUT /api/matching/matches/:match_id/status.
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	matchId, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "invalid match id"))
		return
	}
	var req request.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.UpdateMatchStatus(c.GetString("user_id"), uint(matchId), req.Status); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SaveListing handles POST /api/matching/saved.
func (h *MatchHandler) SaveListing(c *gin.Context) {
	var req request.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.SaveListing(c.GetString("user_id"), req.ListingId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UnsaveListing handles DELETE /api/matching/saved/:listing_id.
func (h *MatchHandler) UnsaveListing(c *gin.Context) {
	if err := h.svc.UnsaveListing(c.GetString("user_id"), c.Param("listing_id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SavedListings handles GET /api/matching/saved.
func (h *MatchHandler) SavedListings(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.GetSavedListings(c.GetString("user_id"), page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
