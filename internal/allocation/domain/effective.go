package domain

// ComputeEffective merges a tier default with an optional company override.
//
// Per numeric field: no override row or a nil field falls through to the
// tier default; an absolute override replaces it; an additive override is
// added to it. Additive values may be negative and the result is not
// clamped, so a large negative override produces a negative effective
// count, which callers surface as-is.
//
// HasOverride reflects the presence of the override row, not whether any
// field actually diverged from the default; admin screens badge overridden
// companies on that distinction.
//
// The function does not check that def and ov refer to the same event or
// that the business is at def's tier; callers fetch the pair together.
func ComputeEffective(def EventAllocation, ov *AllocationOverride) EffectiveAllocation {
	eff := EffectiveAllocation{
		EventID:        def.EventID.String(),
		Tier:           def.Tier,
		GATickets:      def.GATickets,
		ProTickets:     def.ProTickets,
		WhaleTickets:   def.WhaleTickets,
		CustomTickets:  def.CustomTickets,
		CustomPassName: def.CustomPassName,
		SymposiumSeats: def.SymposiumSeats,
		VIPDinnerSeats: def.VIPDinnerSeats,
	}

	if ov == nil {
		return eff
	}

	eff.HasOverride = true
	eff.OverrideMode = ov.Mode
	eff.OverrideReason = ov.Reason

	eff.GATickets = mergeField(def.GATickets, ov.GATickets, ov.Mode)
	eff.ProTickets = mergeField(def.ProTickets, ov.ProTickets, ov.Mode)
	eff.WhaleTickets = mergeField(def.WhaleTickets, ov.WhaleTickets, ov.Mode)
	eff.CustomTickets = mergeField(def.CustomTickets, ov.CustomTickets, ov.Mode)
	eff.SymposiumSeats = mergeField(def.SymposiumSeats, ov.SymposiumSeats, ov.Mode)
	eff.VIPDinnerSeats = mergeField(def.VIPDinnerSeats, ov.VIPDinnerSeats, ov.Mode)

	// The pass name is a label, not a quantity: override wins when present.
	if ov.CustomPassName != nil {
		eff.CustomPassName = ov.CustomPassName
	}

	return eff
}

func mergeField(def int, override *int, mode OverrideMode) int {
	if override == nil {
		return def
	}
	if mode == OverrideModeAdditive {
		return def + *override
	}
	return *override
}
