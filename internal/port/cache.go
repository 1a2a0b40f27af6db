package port

import "context"

// LogoCache stores normalized logo images keyed by their reference.
type LogoCache interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, ref string) (png []byte, ok bool, err error)
	Set(ctx context.Context, ref string, png []byte) error
}
