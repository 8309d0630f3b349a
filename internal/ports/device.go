package ports

import "context"

// DeviceIDSource returns an identifier that stays the same for this
// installation across runs.
type DeviceIDSource interface {
	DeviceID(ctx context.Context) (string, error)
}
