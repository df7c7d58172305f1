package allocation

import (
	"github.com/btcforcorps/orangepages/internal/allocation/repository"
	"github.com/btcforcorps/orangepages/internal/allocation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("allocation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
