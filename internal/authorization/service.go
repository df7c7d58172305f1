// Package authorization guards the admin console with casbin RBAC. Policies
// persist through the gorm adapter so staff grants survive restarts.
package authorization

import (
	"context"
	"errors"
)

type Service interface {
	// Authorize checks that the actor may perform action on object.
	Authorize(ctx context.Context, actor, object, action string) error
	// GrantRole assigns a named role to a user.
	GrantRole(ctx context.Context, userID, role string) error
	// RevokeRole removes a named role from a user.
	RevokeRole(ctx context.Context, userID, role string) error
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
