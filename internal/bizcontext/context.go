// Package bizcontext carries the authenticated user and active business
// through request contexts.
package bizcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type businessKey struct{}
type userKey struct{}

// WithBusinessID stores the active business ID in the context.
func WithBusinessID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, businessKey{}, id)
}

// BusinessIDFromContext returns the active business ID, if set.
func BusinessIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	switch typed := ctx.Value(businessKey{}).(type) {
	case snowflake.ID:
		return typed, true
	case int64:
		return snowflake.ID(typed), true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// WithUserID stores the authenticated user ID in the context.
func WithUserID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFromContext returns the authenticated user ID, if set.
func UserIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	switch typed := ctx.Value(userKey{}).(type) {
	case snowflake.ID:
		return typed, true
	case int64:
		return snowflake.ID(typed), true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
