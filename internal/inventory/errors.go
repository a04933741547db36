package inventory

import "github.com/cockroachdb/errors"

// Validation failures. Operations check these before mutating anything.
var (
	ErrInvalidName            = errors.New("name cannot be empty")
	ErrInvalidType            = errors.New("invalid container type")
	ErrNegativeValue          = errors.New("value must not be negative")
	ErrCardNotInCollection    = errors.New("card not found in collection")
	ErrCardAlreadyInContainer = errors.New("card already exists in this container")
	ErrCardNotAllowed         = errors.New("card type not allowed")
	ErrCardNotInContainer     = errors.New("card not found in container")
	ErrNoCopiesLeft           = errors.New("card already at 0 copies")
	ErrNotABinder             = errors.New("container is not a binder")
	ErrUnknownContainer       = errors.New("container does not belong to this ledger")
)
