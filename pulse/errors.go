package pulse

import (
	"errors"
	"fmt"
)

// ErrSurfaceUnrecoverable is returned by DrawFrame once frame acquisition
// failed too many times in a row.
var ErrSurfaceUnrecoverable = errors.New("surface unrecoverable")

// NoAdapterError is returned if no adapter can present to the surface.
type NoAdapterError struct {
	Reason string
	Err    error
}

func (e *NoAdapterError) Error() string {
	return formatReason("no adapter", e.Reason, e.Err)
}

func (e *NoAdapterError) Unwrap() error {
	return e.Err
}

type DeviceCreationError struct {
	Reason string
	Err    error
}

func (e *DeviceCreationError) Error() string {
	return formatReason("create device", e.Reason, e.Err)
}

func (e *DeviceCreationError) Unwrap() error {
	return e.Err
}

//go:generate go tool stringer -type=AcquireFailure -trimprefix=Acquire

// AcquireFailure categorizes why no surface image could be acquired.
// All of them are handled by reconfiguring the surface.
type AcquireFailure int

const (
	// AcquireTimeout means no image was produced within the backends deadline.
	AcquireTimeout AcquireFailure = iota

	// AcquireOutdated means the surface configuration does not match the window anymore.
	AcquireOutdated

	// AcquireLost means the surface became invalid, e.g. after a device reset.
	AcquireLost

	AcquireOutOfMemory
)

const acquireFailureCount = int(AcquireOutOfMemory) + 1

type AcquireError struct {
	Reason AcquireFailure
	Err    error
}

func (e *AcquireError) Error() string {
	return formatReason("acquire frame", e.Reason.String(), e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

func formatReason(prefix, reason string, err error) string {
	switch {
	case reason != "" && err != nil:
		return fmt.Sprintf("%s: %s: %s", prefix, reason, err)
	case reason != "":
		return prefix + ": " + reason
	case err != nil:
		return prefix + ": " + err.Error()
	default:
		return prefix
	}
}
