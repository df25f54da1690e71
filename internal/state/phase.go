package state

// Phase tracks a container's hydration lifecycle. Consumers must treat
// anything before PhaseReady as "assume defaults": persisted flags are not
// trustworthy until restoration has settled.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseRestoring     Phase = "restoring"
	PhaseReady         Phase = "ready"
)
