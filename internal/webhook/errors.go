package webhook

import (
	"errors"
	"fmt"
	"strings"
)

// MirrorError classifies mirror call failures as transient/permanent.
type MirrorError struct {
	StatusCode int
	Message    string
	Transient  bool
	Cause      error
}

func (e *MirrorError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 3)
	parts = append(parts, "mirror error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *MirrorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsTransient reports whether a mirror failure is worth retrying later.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var mirrorErr *MirrorError
	if errors.As(err, &mirrorErr) {
		return mirrorErr.Transient
	}
	return false
}
