package auth

import (
	"github.com/btcforcorps/orangepages/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	session.Module,
)
