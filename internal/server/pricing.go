package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	"github.com/btcforcorps/orangepages/internal/providers/pdf"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) ListBenefits(c *gin.Context) {
	resp, err := s.pricingsvc.ListBenefits(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type quoteBenefitsRequest struct {
	BenefitIDs   []string `json:"benefit_ids"`
	Region       string   `json:"region,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	PreparedFor  string   `json:"prepared_for,omitempty"`
}

func (s *Server) QuoteBenefits(c *gin.Context) {
	var req quoteBenefitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingsvc.Quote(c.Request.Context(), pricingdomain.QuoteRequest{
		BenefitIDs: req.BenefitIDs,
		Region:     strings.TrimSpace(req.Region),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "pdf" {
		s.renderQuote(c, req, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) renderQuote(c *gin.Context, req quoteBenefitsRequest, quote *pricingdomain.Quote) {
	ctx := c.Request.Context()

	benefits, err := s.pricingsvc.ListBenefits(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	selected := make(map[string]bool, len(req.BenefitIDs))
	for _, id := range req.BenefitIDs {
		selected[id] = true
	}

	items := make([]pdf.QuoteItem, 0, len(req.BenefitIDs))
	for _, b := range benefits {
		if !selected[b.ID.String()] {
			continue
		}
		items = append(items, pdf.QuoteItem{
			Name:  b.Name,
			Price: formatUSD(b.BasePrice),
		})
	}

	doc, err := s.pdfgen.GenerateQuote(ctx, pdf.QuoteData{
		BusinessName: strings.TrimSpace(req.BusinessName),
		PreparedFor:  strings.TrimSpace(req.PreparedFor),
		QuoteDate:    time.Now().Format("January 2, 2006"),
		Items:        items,
		Subtotal:     formatUSD(quote.BenefitTotal),
		Discount:     fmt.Sprintf("%.0f%%", quote.MaxDiscount),
		Total:        formatUSD(quote.DiscountedBenefitTotal),
		Savings:      formatUSD(quote.Savings),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="benefit-quote.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, doc); err != nil {
		s.log.Warn("quote write failed", zap.Error(err))
	}
}

func formatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func (s *Server) ListThresholds(c *gin.Context) {
	resp, err := s.pricingsvc.ListThresholds(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateThreshold(c *gin.Context) {
	var req pricingdomain.UpsertThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingsvc.CreateThreshold(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "pricing.create_threshold", "pricing_threshold", &targetID, map[string]any{
			"threshold_type":      string(resp.Type),
			"threshold_value":     resp.Value,
			"discount_percentage": resp.DiscountPercentage,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateThreshold(c *gin.Context) {
	var req pricingdomain.UpsertThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.pricingsvc.UpdateThreshold(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "pricing.update_threshold", "pricing_threshold", &targetID, map[string]any{
			"threshold_type":      string(resp.Type),
			"threshold_value":     resp.Value,
			"discount_percentage": resp.DiscountPercentage,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteThreshold(c *gin.Context) {
	if err := s.pricingsvc.DeleteThreshold(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := c.Param("id")
		_ = s.auditSvc.AuditLog(c.Request.Context(), "pricing.delete_threshold", "pricing_threshold", &targetID, nil)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
