package providers

import (
	"github.com/btcforcorps/orangepages/internal/providers/email"
	"github.com/btcforcorps/orangepages/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
