package field

import "errors"

// ErrInvalidConfig indicates a field configuration that cannot be simulated.
var ErrInvalidConfig = errors.New("field: invalid config")
