package host

import gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"

// Config holds configuration for the host service
type Config struct {
	GameRepo gameRepo.Repository
}

// AcquireInput contains parameters for taking the host lock. ExistingKey
// is optional.
type AcquireInput struct {
	GameCode    string
	ExistingKey string
}

// AcquireOutput contains the key now guarding the game
type AcquireOutput struct {
	HostKey string `json:"hostKey"`
}

// ReleaseInput contains parameters for giving up the host lock
type ReleaseInput struct {
	GameCode string
	HostKey  string
}

// ReleaseOutput is returned on a successful release
type ReleaseOutput struct {
	Released bool `json:"released"`
}

// ForceReleaseInput contains parameters for clearing any host lock
type ForceReleaseInput struct {
	GameCode string
}

// ForceReleaseOutput reports whether a lock was actually held
type ForceReleaseOutput struct {
	WasHosted bool `json:"wasHosted"`
}

// VerifyInput contains the key to check
type VerifyInput struct {
	GameCode string
	HostKey  string
}
