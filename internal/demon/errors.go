package demon

import (
	"errors"
	"fmt"
)

// ErrInvalidState indicates a particle acquired a NaN or Inf component.
var ErrInvalidState = errors.New("demon: invalid particle state (NaN or Inf detected)")

// ConfigError rejects an invalid configuration value. Construction fails
// outright rather than clamping, so a bad run can never masquerade as a
// reproducible one.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("demon: config %s=%s: %s", e.Field, e.Value, e.Message)
}
