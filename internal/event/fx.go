package event

import (
	"github.com/btcforcorps/orangepages/internal/event/repository"
	"github.com/btcforcorps/orangepages/internal/event/service"
	"go.uber.org/fx"
)

var Module = fx.Module("event.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
