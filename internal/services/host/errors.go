package host

// HostError is a custom error type for host lock errors
type HostError string

// Error implements the error interface
func (e HostError) Error() string {
	return string(e)
}

const (
	ErrAlreadyHosted   HostError = "game already has a host"
	ErrInvalidKey      HostError = "host key does not match"
	ErrGameNotFound    HostError = "game not found"
	ErrHostKeyRequired HostError = "host key is required"
	ErrNilConfig       HostError = "config cannot be nil"
	ErrNilGameRepo     HostError = "game repository cannot be nil"
)
