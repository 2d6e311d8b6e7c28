package translation

import (
	"errors"
	"fmt"
)

// ErrRecordNotSaved marks a translation that succeeded upstream but whose
// record write failed. Callers use it to tell "save failed" apart from
// "translation failed".
var ErrRecordNotSaved = errors.New("translation succeeded but the record was not saved")

// UpstreamError reports a provider call that returned a non-success status
// or a malformed payload. Never retried.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider %s returned status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
