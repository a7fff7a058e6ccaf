package model

// Target is one point of the construction shape. Positions are fixed at
// generation time; only the build/lock bookkeeping mutates.
type Target struct {
	Pos Vec3

	// Built is monotonic false→true.
	Built bool

	// Locked marks an exclusive claim by Owner. Locked implies
	// Owner != NoAgent and the owner's Target index points back here.
	Locked bool
	Owner  Handle

	// Priority is recomputed in full when the active strategy changes.
	Priority float64

	// Progress accumulates in [0,1] while the owning builder is within
	// arrival range; it never resets.
	Progress float64
}

// Unlock releases the claim without touching build progress.
func (t *Target) Unlock() {
	t.Locked = false
	t.Owner = NoAgent
}
