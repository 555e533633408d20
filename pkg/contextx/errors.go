package contextx

import "errors"

// ErrNoValue reports that the context carries no value of the requested kind.
var ErrNoValue = errors.New("no value in context")
