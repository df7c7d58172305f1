package audit

import (
	"github.com/btcforcorps/orangepages/internal/audit/repository"
	"github.com/btcforcorps/orangepages/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
