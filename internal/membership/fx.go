package membership

import (
	"github.com/btcforcorps/orangepages/internal/membership/repository"
	"github.com/btcforcorps/orangepages/internal/membership/service"
	"go.uber.org/fx"
)

var Module = fx.Module("membership.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
