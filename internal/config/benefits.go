package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BenefitsConfig holds operator-tunable benefit settings. These are not
// admin-console data (tier allocations and thresholds live in the database);
// they are deployment-level knobs loaded from benefits.yml when present.
type BenefitsConfig struct {
	RegionMultipliers map[string]float64 `mapstructure:"regionMultipliers"`
	ClaimRatePerMin   float64            `mapstructure:"claimRatePerMin"`
	ClaimBurst        int                `mapstructure:"claimBurst"`
}

func DefaultBenefitsConfig() BenefitsConfig {
	return BenefitsConfig{
		RegionMultipliers: map[string]float64{},
		ClaimRatePerMin:   30,
		ClaimBurst:        10,
	}
}

// BenefitsConfigHolder keeps the current benefits config and swaps it
// atomically when the underlying file changes.
type BenefitsConfigHolder struct {
	current atomic.Value // holds BenefitsConfig
}

func NewBenefitsConfigHolder() (*BenefitsConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("benefits")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/orangepages")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ORANGEPAGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &BenefitsConfigHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultBenefitsConfig())
		return holder, nil
	}

	cfg, err := unmarshalBenefits(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.OnConfigChange(func(_ fsnotify.Event) {
		next, err := unmarshalBenefits(v)
		if err != nil {
			zap.L().Warn("benefits config reload failed", zap.Error(err))
			return
		}
		holder.current.Store(next)
	})
	v.WatchConfig()

	return holder, nil
}

func (h *BenefitsConfigHolder) Current() BenefitsConfig {
	if cfg, ok := h.current.Load().(BenefitsConfig); ok {
		return cfg
	}
	return DefaultBenefitsConfig()
}

func unmarshalBenefits(v *viper.Viper) (BenefitsConfig, error) {
	cfg := DefaultBenefitsConfig()
	if err := v.UnmarshalKey("benefits", &cfg); err != nil {
		return BenefitsConfig{}, err
	}
	if cfg.RegionMultipliers == nil {
		cfg.RegionMultipliers = map[string]float64{}
	}
	return cfg, nil
}
