package model

// Capabilities is the startup snapshot of optional tooling.
// It is advisory: nothing in the batch path consults it.
type Capabilities struct {
	EnginePresent bool
	HWAccel       bool
}
