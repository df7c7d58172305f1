package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectBusiness     = "business"
	ObjectClaimRequest = "claim_request"
	ObjectMembership   = "membership"
	ObjectEvent        = "event"
	ObjectAllocation   = "allocation"
	ObjectOverride     = "allocation_override"
	ObjectThreshold    = "pricing_threshold"
	ObjectBenefit      = "benefit"
	ObjectStaff        = "staff"
)

const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionGrant   = "grant"
)

const (
	RoleStaff      = "role:staff"
	RoleSuperadmin = "role:superadmin"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor, object, action string) error {
	subject, err := resolveActor(actor)
	if err != nil {
		return err
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) GrantRole(ctx context.Context, userID, role string) error {
	subject, err := resolveActor("user:" + userID)
	if err != nil {
		return err
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, role)
	return err
}

func (s *ServiceImpl) RevokeRole(ctx context.Context, userID, role string) error {
	subject, err := resolveActor("user:" + userID)
	if err != nil {
		return err
	}
	_, err = s.enforcer.RemoveGroupingPolicy(subject, role)
	return err
}

func resolveActor(actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "system" {
		return actor, nil
	}
	if strings.HasPrefix(actor, "user:") {
		raw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(raw)
		if err != nil || userID == 0 {
			return "", ErrInvalidActor
		}
		return fmt.Sprintf("user:%s", userID.String()), nil
	}
	return "", ErrInvalidActor
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Staff run the day-to-day admin console.
		{RoleStaff, ObjectBusiness, ActionView},
		{RoleStaff, ObjectBusiness, ActionUpdate},
		{RoleStaff, ObjectBusiness, ActionApprove},
		{RoleStaff, ObjectClaimRequest, ActionView},
		{RoleStaff, ObjectClaimRequest, ActionApprove},
		{RoleStaff, ObjectMembership, ActionView},
		{RoleStaff, ObjectMembership, ActionGrant},
		{RoleStaff, ObjectMembership, ActionUpdate},
		{RoleStaff, ObjectEvent, ActionView},
		{RoleStaff, ObjectEvent, ActionCreate},
		{RoleStaff, ObjectEvent, ActionUpdate},
		{RoleStaff, ObjectAllocation, ActionView},
		{RoleStaff, ObjectAllocation, ActionUpdate},
		{RoleStaff, ObjectOverride, ActionView},
		{RoleStaff, ObjectOverride, ActionCreate},
		{RoleStaff, ObjectOverride, ActionUpdate},
		{RoleStaff, ObjectOverride, ActionDelete},
		{RoleStaff, ObjectThreshold, ActionView},
		{RoleStaff, ObjectThreshold, ActionCreate},
		{RoleStaff, ObjectThreshold, ActionUpdate},
		{RoleStaff, ObjectThreshold, ActionDelete},
		{RoleStaff, ObjectBenefit, ActionView},

		// Superadmins additionally manage staff and benefits.
		{RoleSuperadmin, ObjectStaff, ActionGrant},
		{RoleSuperadmin, ObjectBenefit, ActionCreate},
		{RoleSuperadmin, ObjectBenefit, ActionUpdate},
		{RoleSuperadmin, ObjectBenefit, ActionDelete},

		// Automated jobs act as system.
		{"system", ObjectMembership, ActionUpdate},
		{"system", ObjectEvent, ActionUpdate},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}

	_, err := enforcer.AddGroupingPolicy(RoleSuperadmin, RoleStaff)
	return err
}
