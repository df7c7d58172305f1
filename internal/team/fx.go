package team

import (
	"github.com/btcforcorps/orangepages/internal/team/repository"
	"github.com/btcforcorps/orangepages/internal/team/service"
	"go.uber.org/fx"
)

var Module = fx.Module("team.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
