package internal

// Flag struct uses 8 bits, with each bit representing a boolean value.
// Currently, 2 bits are used, both owned by the signature based policy.
// Bit 1: Indicates if this line was re-referenced since its last insertion.
// Bit 2: Indicates if this line carries a signature from a miss insertion.
type Flag struct {
	flags int8
}

func (f *Flag) SetOutcome(reused bool) {
	if reused {
		f.flags |= (1 << 0) // Set bit 1 (outcome)
	} else {
		f.flags &^= (1 << 0) // Clear bit 1 (outcome)
	}
}

func (f *Flag) SetSigned(signed bool) {
	if signed {
		f.flags |= (1 << 1) // Set bit 2 (signed)
	} else {
		f.flags &^= (1 << 1) // Clear bit 2 (signed)
	}
}

func (f *Flag) IsOutcome() bool {
	return (f.flags & (1 << 0)) != 0
}

func (f *Flag) IsSigned() bool {
	return (f.flags & (1 << 1)) != 0
}
