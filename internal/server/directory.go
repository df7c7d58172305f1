package server

import (
	"net/http"
	"strings"

	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	"github.com/btcforcorps/orangepages/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type directoryListQuery struct {
	pagination.Pagination
	Query    string `form:"q"`
	Category string `form:"category"`
	Region   string `form:"region"`
}

// ListDirectory is the public directory view. Only active listings show.
func (s *Server) ListDirectory(c *gin.Context) {
	var query directoryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	businesses, pageInfo, err := s.directorysvc.List(c.Request.Context(), directorydomain.ListFilter{
		Query:    strings.TrimSpace(query.Query),
		Category: strings.TrimSpace(query.Category),
		Region:   strings.TrimSpace(query.Region),
		Status:   directorydomain.BusinessActive,
	}, query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": businesses, "page_info": pageInfo})
}

func (s *Server) GetListing(c *gin.Context) {
	resp, err := s.directorysvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SubmitListing(c *gin.Context) {
	var req directorydomain.SubmitListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.directorysvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type adminDirectoryQuery struct {
	pagination.Pagination
	Query    string `form:"q"`
	Category string `form:"category"`
	Region   string `form:"region"`
	Status   string `form:"status"`
}

// AdminListDirectory lists listings in any status for moderation.
func (s *Server) AdminListDirectory(c *gin.Context) {
	var query adminDirectoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	businesses, pageInfo, err := s.directorysvc.List(c.Request.Context(), directorydomain.ListFilter{
		Query:    strings.TrimSpace(query.Query),
		Category: strings.TrimSpace(query.Category),
		Region:   strings.TrimSpace(query.Region),
		Status:   directorydomain.BusinessStatus(strings.TrimSpace(query.Status)),
	}, query.Pagination)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": businesses, "page_info": pageInfo})
}

type setListingStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SetListingStatus(c *gin.Context) {
	var req setListingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.directorysvc.SetStatus(c.Request.Context(), c.Param("id"), directorydomain.BusinessStatus(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "business.set_status", "business", &targetID, map[string]any{
			"status": string(resp.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type submitClaimRequest struct {
	BusinessID string `json:"business_id"`
	Message    string `json:"message"`
}

func (s *Server) SubmitClaim(c *gin.Context) {
	var req submitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.directorysvc.SubmitClaim(c.Request.Context(), directorydomain.SubmitClaimRequest{
		BusinessID: req.BusinessID,
		UserID:     c.GetString(contextUserIDKey),
		Message:    strings.TrimSpace(req.Message),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClaims(c *gin.Context) {
	status := directorydomain.ClaimStatus(strings.TrimSpace(c.Query("status")))

	resp, err := s.directorysvc.ListClaims(c.Request.Context(), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type reviewClaimRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

func (s *Server) ReviewClaim(c *gin.Context) {
	var req reviewClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.directorysvc.ReviewClaim(c.Request.Context(), directorydomain.ReviewClaimRequest{
		ClaimID:    c.Param("id"),
		ReviewerID: c.GetString(contextUserIDKey),
		Approve:    req.Approve,
		Note:       strings.TrimSpace(req.Note),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "claim.review", "claim_request", &targetID, map[string]any{
			"business_id": resp.BusinessID.String(),
			"status":      string(resp.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
