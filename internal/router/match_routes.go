package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMatchRoutes wires scoring, match listings and favourites.
func (rt *Router) RegisterMatchRoutes(rg *gin.RouterGroup) {
	matchGroup := rg.Group("/matching")
	{
		matchGroup.POST("/calculate", rt.handlers.Match.Calculate)
		matchGroup.PUT("/preferences", rt.handlers.Match.UpdatePreferences)
		matchGroup.GET("/seeker", rt.handlers.Match.SeekerMatches)
		matchGroup.GET("/lister", rt.handlers.Match.ListerMatches)
		matchGroup.PUT("/matches/:match_id/status", rt.handlers.Match.UpdateMatchStatus)
		matchGroup.POST("/saved", rt.handlers.Match.SaveListing)
		matchGroup.GET("/saved", rt.handlers.Match.SavedListings)
		matchGroup.DELETE("/saved/:listing_id", rt.handlers.Match.UnsaveListing)
	}
}
