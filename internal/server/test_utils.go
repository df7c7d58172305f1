package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup removes businesses whose name carries a test prefix, plus
// everything hanging off them. Registered outside production only.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.Environment == "production" {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	like := prefix + "%"

	var businessIDs []int64
	if err := s.db.WithContext(ctx).
		Table("businesses").
		Select("id").
		Where("name LIKE ?", like).
		Scan(&businessIDs).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	if len(businessIDs) > 0 {
		tables := []string{
			"ticket_claims",
			"symposium_registrations",
			"dinner_rsvps",
			"speaker_applications",
			"allocation_overrides",
			"memberships",
			"team_members",
			"claim_requests",
		}
		for _, table := range tables {
			if err := s.db.WithContext(ctx).Exec(
				"DELETE FROM "+table+" WHERE business_id IN ?", businessIDs,
			).Error; err != nil {
				AbortWithError(c, err)
				return
			}
		}
		if err := s.db.WithContext(ctx).Exec(
			"DELETE FROM businesses WHERE id IN ?", businessIDs,
		).Error; err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted_businesses": len(businessIDs)}})
}
