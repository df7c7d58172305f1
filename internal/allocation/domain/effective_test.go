package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func baseAllocation() EventAllocation {
	return EventAllocation{
		ID:             snowflake.ID(1),
		EventID:        snowflake.ID(42),
		Tier:           entitlementdomain.TierPremier,
		GATickets:      10,
		ProTickets:     4,
		WhaleTickets:   1,
		CustomTickets:  0,
		SymposiumSeats: 2,
		VIPDinnerSeats: 2,
	}
}

func TestComputeEffective_NoOverrideIsIdentity(t *testing.T) {
	def := baseAllocation()
	eff := ComputeEffective(def, nil)

	assert.Equal(t, def.GATickets, eff.GATickets)
	assert.Equal(t, def.ProTickets, eff.ProTickets)
	assert.Equal(t, def.WhaleTickets, eff.WhaleTickets)
	assert.Equal(t, def.CustomTickets, eff.CustomTickets)
	assert.Equal(t, def.SymposiumSeats, eff.SymposiumSeats)
	assert.Equal(t, def.VIPDinnerSeats, eff.VIPDinnerSeats)
	assert.Equal(t, def.Tier, eff.Tier)
	assert.False(t, eff.HasOverride)
	assert.Empty(t, eff.OverrideReason)
}

func TestComputeEffective_Additive(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"positive delta", 5, 15},
		{"negative delta", -3, 7},
		{"delta below zero is not clamped", -25, -15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ov := &AllocationOverride{
				Mode:      OverrideModeAdditive,
				GATickets: intPtr(tc.delta),
				Reason:    "sponsorship deal",
			}
			eff := ComputeEffective(baseAllocation(), ov)
			assert.Equal(t, tc.want, eff.GATickets)
		})
	}
}

func TestComputeEffective_Absolute(t *testing.T) {
	ov := &AllocationOverride{
		Mode:      OverrideModeAbsolute,
		GATickets: intPtr(100),
		Reason:    "event host",
	}
	eff := ComputeEffective(baseAllocation(), ov)
	assert.Equal(t, 100, eff.GATickets)

	// The other fields fall through to the default.
	assert.Equal(t, 4, eff.ProTickets)
	assert.Equal(t, 2, eff.SymposiumSeats)
}

func TestComputeEffective_PartialOverride(t *testing.T) {
	def := baseAllocation()
	ov := &AllocationOverride{
		Mode:           OverrideModeAbsolute,
		SymposiumSeats: intPtr(6),
		Reason:         "speaking sponsor",
	}

	eff := ComputeEffective(def, ov)

	assert.Equal(t, 6, eff.SymposiumSeats)
	assert.Equal(t, def.GATickets, eff.GATickets)
	assert.Equal(t, def.ProTickets, eff.ProTickets)
	assert.Equal(t, def.WhaleTickets, eff.WhaleTickets)
	assert.Equal(t, def.CustomTickets, eff.CustomTickets)
	assert.Equal(t, def.VIPDinnerSeats, eff.VIPDinnerSeats)

	// The row exists, so the badge shows even though most fields fell
	// through to the default.
	assert.True(t, eff.HasOverride)
	assert.Equal(t, OverrideModeAbsolute, eff.OverrideMode)
	assert.Equal(t, "speaking sponsor", eff.OverrideReason)
}

func TestComputeEffective_EmptyOverrideRowStillFlags(t *testing.T) {
	def := baseAllocation()
	ov := &AllocationOverride{Mode: OverrideModeAdditive, Reason: "placeholder"}

	eff := ComputeEffective(def, ov)

	assert.True(t, eff.HasOverride)
	assert.Equal(t, def.GATickets, eff.GATickets)
	assert.Equal(t, def.SymposiumSeats, eff.SymposiumSeats)
}

func TestComputeEffective_CustomPassName(t *testing.T) {
	def := baseAllocation()
	def.CustomPassName = strPtr("Founders Pass")

	// No override field: default label stands.
	eff := ComputeEffective(def, &AllocationOverride{Mode: OverrideModeAdditive, Reason: "r"})
	assert.Equal(t, "Founders Pass", *eff.CustomPassName)

	// Override label wins regardless of mode.
	eff = ComputeEffective(def, &AllocationOverride{
		Mode:           OverrideModeAdditive,
		CustomPassName: strPtr("Whale Lounge"),
		Reason:         "r",
	})
	assert.Equal(t, "Whale Lounge", *eff.CustomPassName)
}
