package server

import (
	"net/http"
	"strings"

	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"github.com/gin-gonic/gin"
)

// requirePermission checks a derived permission flag for the caller
// against the business in the route.
func (s *Server) requirePermission(c *gin.Context, businessID string, allowed func(entitlementdomain.Permissions) bool) bool {
	profile, err := s.entitlementsvc.Profile(c.Request.Context(), c.GetString(contextUserIDKey), businessID)
	if err != nil {
		AbortWithError(c, err)
		return false
	}
	if !allowed(profile.Permissions) {
		AbortWithError(c, ErrForbidden)
		return false
	}
	return true
}

func (s *Server) ListTeam(c *gin.Context) {
	resp, err := s.teamsvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type addTeamMemberRequest struct {
	UserID string  `json:"user_id"`
	Role   string  `json:"role"`
	Title  *string `json:"title,omitempty"`
}

func (s *Server) AddTeamMember(c *gin.Context) {
	businessID := c.Param("id")
	if !s.requirePermission(c, businessID, func(p entitlementdomain.Permissions) bool { return p.CanManageTeam }) {
		return
	}

	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.teamsvc.Add(c.Request.Context(), teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     req.UserID,
		Role:       entitlementdomain.TeamRole(strings.TrimSpace(req.Role)),
		Title:      req.Title,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type changeTeamRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) ChangeTeamRole(c *gin.Context) {
	businessID := c.Param("id")

	var req changeTeamRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Role changes touch leadership, so they need the stronger flag.
	if !s.requirePermission(c, businessID, func(p entitlementdomain.Permissions) bool { return p.CanManageLeadership }) {
		return
	}

	resp, err := s.teamsvc.ChangeRole(c.Request.Context(), teamdomain.ChangeRoleRequest{
		BusinessID: businessID,
		UserID:     c.Param("userId"),
		Role:       entitlementdomain.TeamRole(strings.TrimSpace(req.Role)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveTeamMember(c *gin.Context) {
	businessID := c.Param("id")
	if !s.requirePermission(c, businessID, func(p entitlementdomain.Permissions) bool { return p.CanManageTeam }) {
		return
	}

	if err := s.teamsvc.Remove(c.Request.Context(), businessID, c.Param("userId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": true}})
}

func (s *Server) SetPrimaryBusiness(c *gin.Context) {
	if err := s.teamsvc.SetPrimary(c.Request.Context(), c.GetString(contextUserIDKey), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"primary": true}})
}
