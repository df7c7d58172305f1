package directory

import (
	"github.com/btcforcorps/orangepages/internal/directory/repository"
	"github.com/btcforcorps/orangepages/internal/directory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("directory.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
