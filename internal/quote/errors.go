package quote

import "errors"

// ErrValidation marks a malformed or incomplete submission. Handlers
// map it to a 400 response.
var ErrValidation = errors.New("invalid submission")
