package server

import (
	"net/http"
	"strings"
	"time"

	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetMembership(c *gin.Context) {
	resp, err := s.membershipsvc.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMembershipHistory(c *gin.Context) {
	resp, err := s.membershipsvc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type grantMembershipRequest struct {
	Tier        string     `json:"tier"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	BillingRef  *string    `json:"billing_ref,omitempty"`
}

func (s *Server) GrantMembership(c *gin.Context) {
	var req grantMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.membershipsvc.Grant(c.Request.Context(), membershipdomain.GrantRequest{
		BusinessID:  c.Param("id"),
		Tier:        entitlementdomain.MemberTier(strings.TrimSpace(req.Tier)),
		ExpiresAt:   req.ExpiresAt,
		AmountCents: req.AmountCents,
		BillingRef:  req.BillingRef,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID
		_ = s.auditSvc.AuditLog(c.Request.Context(), "membership.grant", "membership", &targetID, map[string]any{
			"business_id": resp.BusinessID,
			"tier":        string(resp.Tier),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type changeMembershipTierRequest struct {
	Tier string `json:"tier"`
}

func (s *Server) ChangeMembershipTier(c *gin.Context) {
	var req changeMembershipTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.membershipsvc.ChangeTier(c.Request.Context(), membershipdomain.ChangeTierRequest{
		BusinessID: c.Param("id"),
		Tier:       entitlementdomain.MemberTier(strings.TrimSpace(req.Tier)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID
		_ = s.auditSvc.AuditLog(c.Request.Context(), "membership.change_tier", "membership", &targetID, map[string]any{
			"business_id": resp.BusinessID,
			"tier":        string(resp.Tier),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateMembership(c *gin.Context) {
	businessID := c.Param("id")
	if err := s.membershipsvc.Deactivate(c.Request.Context(), businessID); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), "membership.deactivate", "membership", nil, map[string]any{
			"business_id": businessID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}
