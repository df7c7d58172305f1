package server

import (
	"net/http"
	"strings"

	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListTierDefaults(c *gin.Context) {
	resp, err := s.allocationsvc.ListTierDefaults(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetTierDefault(c *gin.Context) {
	var req allocationdomain.SetTierDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.EventID = c.Param("id")
	req.Tier = entitlementdomain.MemberTier(strings.TrimSpace(c.Param("tier")))

	resp, err := s.allocationsvc.SetTierDefault(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "allocation.set_tier_default", "allocation", &targetID, map[string]any{
			"event_id": req.EventID,
			"tier":     string(req.Tier),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOverrides(c *gin.Context) {
	resp, err := s.allocationsvc.ListOverrides(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOverride(c *gin.Context) {
	resp, err := s.allocationsvc.GetOverride(c.Request.Context(), c.Param("id"), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if resp == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertOverride(c *gin.Context) {
	var req allocationdomain.UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.BusinessID = c.Param("id")
	req.EventID = c.Param("eventId")

	resp, err := s.allocationsvc.UpsertOverride(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "allocation.upsert_override", "allocation_override", &targetID, map[string]any{
			"business_id": req.BusinessID,
			"event_id":    req.EventID,
			"mode":        string(req.Mode),
			"reason":      req.Reason,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOverride(c *gin.Context) {
	if err := s.allocationsvc.DeleteOverride(c.Request.Context(), c.Param("id"), c.Param("eventId")); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), "allocation.delete_override", "allocation_override", nil, map[string]any{
			"business_id": c.Param("id"),
			"event_id":    c.Param("eventId"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// ResolveAllocation shows staff the merged allocation a business holds
// for an event, override applied.
func (s *Server) ResolveAllocation(c *gin.Context) {
	resp, err := s.allocationsvc.Resolve(c.Request.Context(), c.Param("id"), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
