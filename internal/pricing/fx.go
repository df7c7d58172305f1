package pricing

import (
	"github.com/btcforcorps/orangepages/internal/pricing/repository"
	"github.com/btcforcorps/orangepages/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
