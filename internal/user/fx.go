package user

import (
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/btcforcorps/orangepages/internal/user/service"
	"github.com/btcforcorps/orangepages/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(
		repository.ProvideStore[userdomain.User],
		service.New,
	),
)
