package server

import (
	"net/http"
	"strings"

	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.usersvc.Register(c.Request.Context(), userdomain.RegisterRequest{
		Email:       strings.TrimSpace(req.Email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Password:    req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.usersvc.Authenticate(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	token, expiresAt, err := s.sessionStore.Create(c.Request.Context(), user.ID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, token, expiresAt)
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.sessionStore.Destroy(c.Request.Context(), token); err != nil {
			s.log.Warn("session destroy failed", zap.Error(err))
		}
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (s *Server) Me(c *gin.Context) {
	resp, err := s.usersvc.GetByID(c.Request.Context(), c.GetString(contextUserIDKey))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetProfile derives the caller's membership profile for one business,
// permission flags included.
func (s *Server) GetProfile(c *gin.Context) {
	businessID := strings.TrimSpace(c.Query("business_id"))
	if businessID == "" {
		AbortWithError(c, newValidationError("business_id", "required", "business_id is required"))
		return
	}

	resp, err := s.entitlementsvc.Profile(c.Request.Context(), c.GetString(contextUserIDKey), businessID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
