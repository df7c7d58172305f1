package server

import (
	"io"
	"net/http"
	"strings"

	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	"github.com/btcforcorps/orangepages/internal/providers/pdf"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListEvents is the public calendar. Only published events show.
func (s *Server) ListEvents(c *gin.Context) {
	resp, err := s.eventsvc.List(c.Request.Context(), eventdomain.EventPublished)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEvent(c *gin.Context) {
	resp, err := s.eventsvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AdminListEvents(c *gin.Context) {
	status := eventdomain.EventStatus(strings.TrimSpace(c.Query("status")))

	resp, err := s.eventsvc.List(c.Request.Context(), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateEvent(c *gin.Context) {
	var req eventdomain.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "event.create", "event", &targetID, map[string]any{
			"name": resp.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEvent(c *gin.Context) {
	var req eventdomain.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.EventID = c.Param("id")

	resp, err := s.eventsvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "event.update", "event", &targetID, map[string]any{
			"name":   resp.Name,
			"status": string(resp.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBenefitSummary(c *gin.Context) {
	businessID := strings.TrimSpace(c.Query("business_id"))
	if businessID == "" {
		AbortWithError(c, newValidationError("business_id", "required", "business_id is required"))
		return
	}

	resp, err := s.eventsvc.Summary(c.Request.Context(), c.GetString(contextUserIDKey), businessID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type claimTicketsRequest struct {
	BusinessID string `json:"business_id"`
	PassType   string `json:"pass_type"`
	Quantity   int    `json:"quantity"`
}

func (s *Server) ClaimTickets(c *gin.Context) {
	var req claimTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	eventID := c.Param("id")
	ctx := c.Request.Context()

	// One claim at a time per (business, event) so two teammates cannot
	// both spend the last tickets.
	if s.limiter.Enabled() {
		lockToken, locked, err := s.limiter.TryLockClaim(ctx, req.BusinessID, eventID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !locked {
			AbortWithError(c, ErrConflict)
			return
		}
		defer func() {
			if err := s.limiter.ReleaseClaim(ctx, req.BusinessID, eventID, lockToken); err != nil {
				s.log.Warn("claim lock release failed", zap.Error(err))
			}
		}()
	}

	resp, err := s.eventsvc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: req.BusinessID,
		EventID:    eventID,
		UserID:     c.GetString(contextUserIDKey),
		PassType:   eventdomain.PassType(strings.TrimSpace(req.PassType)),
		Quantity:   req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "pdf" {
		s.renderTicketConfirmation(c, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) renderTicketConfirmation(c *gin.Context, claim *eventdomain.TicketClaim) {
	ctx := c.Request.Context()

	event, err := s.eventsvc.Get(ctx, claim.EventID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	business, err := s.directorysvc.Get(ctx, claim.BusinessID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	member, err := s.usersvc.GetByID(ctx, claim.UserID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfgen.GenerateTicketConfirmation(ctx, pdf.TicketConfirmationData{
		BusinessName: business.Name,
		MemberName:   member.DisplayName,
		EventName:    event.Name,
		EventVenue:   event.Venue,
		EventDate:    event.StartsAt.Format("January 2, 2006"),
		ClaimID:      claim.ID.String(),
		Items: []pdf.TicketItem{
			{PassType: string(claim.PassType), Quantity: claim.Quantity},
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ticket-confirmation-`+claim.ID.String()+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, doc); err != nil {
		s.log.Warn("ticket confirmation write failed", zap.Error(err))
	}
}

type registerSymposiumRequest struct {
	BusinessID   string `json:"business_id"`
	AttendeeName string `json:"attendee_name"`
}

func (s *Server) RegisterSymposium(c *gin.Context) {
	var req registerSymposiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventsvc.RegisterSymposium(c.Request.Context(), eventdomain.RegisterSymposiumRequest{
		BusinessID:   req.BusinessID,
		EventID:      c.Param("id"),
		UserID:       c.GetString(contextUserIDKey),
		AttendeeName: strings.TrimSpace(req.AttendeeName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type rsvpDinnerRequest struct {
	BusinessID string `json:"business_id"`
	GuestName  string `json:"guest_name"`
	Dietary    string `json:"dietary"`
}

func (s *Server) RsvpDinner(c *gin.Context) {
	var req rsvpDinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventsvc.RsvpDinner(c.Request.Context(), eventdomain.RsvpDinnerRequest{
		BusinessID: req.BusinessID,
		EventID:    c.Param("id"),
		UserID:     c.GetString(contextUserIDKey),
		GuestName:  strings.TrimSpace(req.GuestName),
		Dietary:    strings.TrimSpace(req.Dietary),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type applyToSpeakRequest struct {
	BusinessID string `json:"business_id"`
	Topic      string `json:"topic"`
	Abstract   string `json:"abstract"`
}

func (s *Server) ApplyToSpeak(c *gin.Context) {
	var req applyToSpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventsvc.ApplyToSpeak(c.Request.Context(), eventdomain.ApplyToSpeakRequest{
		BusinessID: req.BusinessID,
		EventID:    c.Param("id"),
		UserID:     c.GetString(contextUserIDKey),
		Topic:      strings.TrimSpace(req.Topic),
		Abstract:   strings.TrimSpace(req.Abstract),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
