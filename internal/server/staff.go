package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type grantStaffRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) GrantStaffRole(c *gin.Context) {
	var req grantStaffRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authz.GrantRole(c.Request.Context(), c.Param("userId"), strings.TrimSpace(req.Role)); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := c.Param("userId")
		_ = s.auditSvc.AuditLog(c.Request.Context(), "staff.grant_role", "staff", &targetID, map[string]any{
			"role": strings.TrimSpace(req.Role),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"granted": true}})
}

func (s *Server) RevokeStaffRole(c *gin.Context) {
	if err := s.authz.RevokeRole(c.Request.Context(), c.Param("userId"), c.Param("role")); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := c.Param("userId")
		_ = s.auditSvc.AuditLog(c.Request.Context(), "staff.revoke_role", "staff", &targetID, map[string]any{
			"role": c.Param("role"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"revoked": true}})
}
