package server

import (
	"context"
	"net/http"
	"time"

	"github.com/btcforcorps/orangepages/internal/allocation"
	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	"github.com/btcforcorps/orangepages/internal/audit"
	auditdomain "github.com/btcforcorps/orangepages/internal/audit/domain"
	"github.com/btcforcorps/orangepages/internal/auth"
	"github.com/btcforcorps/orangepages/internal/auth/session"
	"github.com/btcforcorps/orangepages/internal/authorization"
	"github.com/btcforcorps/orangepages/internal/config"
	"github.com/btcforcorps/orangepages/internal/clock"
	"github.com/btcforcorps/orangepages/internal/directory"
	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	"github.com/btcforcorps/orangepages/internal/entitlement"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"github.com/btcforcorps/orangepages/internal/event"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	"github.com/btcforcorps/orangepages/internal/membership"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"github.com/btcforcorps/orangepages/internal/migration"
	"github.com/btcforcorps/orangepages/internal/observability"
	obslogger "github.com/btcforcorps/orangepages/internal/observability/logger"
	obsmetrics "github.com/btcforcorps/orangepages/internal/observability/metrics"
	obstracing "github.com/btcforcorps/orangepages/internal/observability/tracing"
	"github.com/btcforcorps/orangepages/internal/pricing"
	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	"github.com/btcforcorps/orangepages/internal/providers"
	"github.com/btcforcorps/orangepages/internal/providers/pdf"
	"github.com/btcforcorps/orangepages/internal/ratelimit"
	"github.com/btcforcorps/orangepages/internal/scheduler"
	"github.com/btcforcorps/orangepages/internal/team"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"github.com/btcforcorps/orangepages/internal/user"
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/btcforcorps/orangepages/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	db.Module,
	migration.Module,
	observability.Module,
	fx.Provide(registerGin),
	auth.Module,
	authorization.Module,
	audit.Module,
	clock.Module,
	scheduler.Module,
	ratelimit.Module,
	providers.Module,
	user.Module,
	directory.Module,
	team.Module,
	membership.Module,
	allocation.Module,
	pricing.Module,
	event.Module,
	entitlement.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	sessions     *session.Manager
	sessionStore *session.Store
	authz        authorization.Service
	auditSvc     auditdomain.Service
	limiter      *ratelimit.BenefitLimiter
	pdfgen       pdf.Provider

	usersvc        userdomain.Service
	directorysvc   directorydomain.Service
	teamsvc        teamdomain.Service
	membershipsvc  membershipdomain.Service
	allocationsvc  allocationdomain.Service
	pricingsvc     pricingdomain.Service
	eventsvc       eventdomain.Service
	entitlementsvc entitlementdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Sessions     *session.Manager
	SessionStore *session.Store
	AuthzSvc     authorization.Service
	AuditSvc     auditdomain.Service
	Limiter      *ratelimit.BenefitLimiter `optional:"true"`
	PDFGen       pdf.Provider

	UserSvc        userdomain.Service
	DirectorySvc   directorydomain.Service
	TeamSvc        teamdomain.Service
	MembershipSvc  membershipdomain.Service
	AllocationSvc  allocationdomain.Service
	PricingSvc     pricingdomain.Service
	EventSvc       eventdomain.Service
	EntitlementSvc entitlementdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		log:            p.Log.Named("http.server"),
		genID:          p.GenID,
		sessions:       p.Sessions,
		sessionStore:   p.SessionStore,
		authz:          p.AuthzSvc,
		auditSvc:       p.AuditSvc,
		limiter:        p.Limiter,
		pdfgen:         p.PDFGen,
		usersvc:        p.UserSvc,
		directorysvc:   p.DirectorySvc,
		teamsvc:        p.TeamSvc,
		membershipsvc:  p.MembershipSvc,
		allocationsvc:  p.AllocationSvc,
		pricingsvc:     p.PricingSvc,
		eventsvc:       p.EventSvc,
		entitlementsvc: p.EntitlementSvc,
	}

	svc.registerAuthRoutes()
	svc.registerPublicRoutes()
	svc.registerMemberRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	// -------- Directory --------
	api.GET("/directory", s.ListDirectory)
	api.GET("/directory/:slug", s.GetListing)
	api.POST("/directory", s.SubmitListing)

	// -------- Events --------
	api.GET("/events", s.ListEvents)
	api.GET("/events/:id", s.GetEvent)

	// -------- Pricing --------
	api.GET("/benefits", s.ListBenefits)
	api.POST("/pricing/quote", s.QuoteBenefits)

	if s.cfg.Environment != "production" {
		api.POST("/test/cleanup", s.TestCleanup)
	}
}

func (s *Server) registerMemberRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/profile", s.GetProfile)

	// -------- Claims --------
	api.POST("/claims", s.SubmitClaim)

	// -------- Team --------
	api.GET("/businesses/:id/team", s.ListTeam)
	api.POST("/businesses/:id/team", s.AddTeamMember)
	api.PATCH("/businesses/:id/team/:userId", s.ChangeTeamRole)
	api.DELETE("/businesses/:id/team/:userId", s.RemoveTeamMember)
	api.POST("/businesses/:id/primary", s.SetPrimaryBusiness)

	// -------- Membership --------
	api.GET("/businesses/:id/membership", s.GetMembership)
	api.GET("/businesses/:id/membership/history", s.GetMembershipHistory)

	// -------- Event benefits --------
	api.GET("/events/:id/summary", s.GetBenefitSummary)
	api.POST("/events/:id/tickets", s.ClaimRateLimit(), s.ClaimTickets)
	api.POST("/events/:id/symposium", s.ClaimRateLimit(), s.RegisterSymposium)
	api.POST("/events/:id/dinner", s.ClaimRateLimit(), s.RsvpDinner)
	api.POST("/events/:id/speak", s.ApplyToSpeak)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AuthRequired())

	// -------- Directory moderation --------
	admin.GET("/businesses", s.RequireStaff(authorization.ObjectBusiness, authorization.ActionView), s.AdminListDirectory)
	admin.POST("/businesses/:id/status", s.RequireStaff(authorization.ObjectBusiness, authorization.ActionUpdate), s.SetListingStatus)

	// -------- Claim review --------
	admin.GET("/claims", s.RequireStaff(authorization.ObjectClaimRequest, authorization.ActionView), s.ListClaims)
	admin.POST("/claims/:id/review", s.RequireStaff(authorization.ObjectClaimRequest, authorization.ActionApprove), s.ReviewClaim)

	// -------- Memberships --------
	admin.POST("/businesses/:id/membership", s.RequireStaff(authorization.ObjectMembership, authorization.ActionCreate), s.GrantMembership)
	admin.PATCH("/businesses/:id/membership", s.RequireStaff(authorization.ObjectMembership, authorization.ActionUpdate), s.ChangeMembershipTier)
	admin.DELETE("/businesses/:id/membership", s.RequireStaff(authorization.ObjectMembership, authorization.ActionDelete), s.DeactivateMembership)

	// -------- Events --------
	admin.GET("/events", s.RequireStaff(authorization.ObjectEvent, authorization.ActionView), s.AdminListEvents)
	admin.POST("/events", s.RequireStaff(authorization.ObjectEvent, authorization.ActionCreate), s.CreateEvent)
	admin.PATCH("/events/:id", s.RequireStaff(authorization.ObjectEvent, authorization.ActionUpdate), s.UpdateEvent)

	// -------- Allocations --------
	admin.GET("/events/:id/allocations", s.RequireStaff(authorization.ObjectAllocation, authorization.ActionView), s.ListTierDefaults)
	admin.PUT("/events/:id/allocations/:tier", s.RequireStaff(authorization.ObjectAllocation, authorization.ActionUpdate), s.SetTierDefault)
	admin.GET("/events/:id/overrides", s.RequireStaff(authorization.ObjectOverride, authorization.ActionView), s.ListOverrides)
	admin.GET("/businesses/:id/events/:eventId/override", s.RequireStaff(authorization.ObjectOverride, authorization.ActionView), s.GetOverride)
	admin.PUT("/businesses/:id/events/:eventId/override", s.RequireStaff(authorization.ObjectOverride, authorization.ActionUpdate), s.UpsertOverride)
	admin.DELETE("/businesses/:id/events/:eventId/override", s.RequireStaff(authorization.ObjectOverride, authorization.ActionDelete), s.DeleteOverride)
	admin.GET("/businesses/:id/events/:eventId/allocation", s.RequireStaff(authorization.ObjectAllocation, authorization.ActionView), s.ResolveAllocation)

	// -------- Pricing --------
	admin.GET("/pricing/thresholds", s.RequireStaff(authorization.ObjectThreshold, authorization.ActionView), s.ListThresholds)
	admin.POST("/pricing/thresholds", s.RequireStaff(authorization.ObjectThreshold, authorization.ActionCreate), s.CreateThreshold)
	admin.PATCH("/pricing/thresholds/:id", s.RequireStaff(authorization.ObjectThreshold, authorization.ActionUpdate), s.UpdateThreshold)
	admin.DELETE("/pricing/thresholds/:id", s.RequireStaff(authorization.ObjectThreshold, authorization.ActionDelete), s.DeleteThreshold)

	// -------- Audit trail --------
	admin.GET("/audit-logs", s.RequireStaff(authorization.ObjectStaff, authorization.ActionView), s.ListAuditLogs)

	// -------- Staff roles --------
	admin.POST("/staff/:userId/roles", s.RequireStaff(authorization.ObjectStaff, authorization.ActionGrant), s.GrantStaffRole)
	admin.DELETE("/staff/:userId/roles/:role", s.RequireStaff(authorization.ObjectStaff, authorization.ActionGrant), s.RevokeStaffRole)
}
