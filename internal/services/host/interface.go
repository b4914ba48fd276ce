package host

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jpcodeman/partygame/internal/services/host Service

import "context"

// Service manages the advisory controller lock on a game. The lock never
// expires; only a privileged force release clears an abandoned one.
type Service interface {
	// Acquire takes the lock, or re-validates a key the caller already holds
	Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error)

	// Release clears the lock when the key matches
	Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error)

	// ForceRelease clears the lock regardless of who holds it
	ForceRelease(ctx context.Context, input *ForceReleaseInput) (*ForceReleaseOutput, error)

	// Verify checks a key against the stored lock without changing it
	Verify(ctx context.Context, input *VerifyInput) error
}
