package source

import "errors"

// Configuration errors are detected at setup time, before any cell loop
// runs, and leave the caller nothing to retry: they describe unimplemented
// or inconsistent numerical configurations. Match with errors.Is; context
// (term name, equation) is added with %w wrapping at the call site.
var (
	// ErrNilTerm is returned when a nil descriptor is handed to a factory
	// or mutator.
	ErrNilTerm = errors.New("source: nil source term")

	// ErrTooManyTerms is returned when more than MaxTerms descriptors are
	// declared for one equation. The activation mask is a single word.
	ErrTooManyTerms = errors.New("source: too many source terms")

	// ErrInvalidVarKind is returned for a variable kind outside the
	// scalar/vector/tensor enumeration.
	ErrInvalidVarKind = errors.New("source: invalid variable kind")

	// ErrUnsupported is returned when no integration routine exists for a
	// (scheme, reduction, definition, quadrature) combination.
	ErrUnsupported = errors.New("source: unsupported configuration")

	// ErrEmptySubset reports a descriptor that claims a restricted mesh
	// location whose cell subset resolves to nothing. This is an
	// inconsistent descriptor, not a user error.
	ErrEmptySubset = errors.New("source: mesh location resolves to an empty cell subset")

	// ErrUnknownScheme is returned for a discretization scheme this core
	// does not know about.
	ErrUnknownScheme = errors.New("source: unknown space scheme")

	// ErrReductionSwap is returned when a reduction change is requested
	// for a support the swap does not handle.
	ErrReductionSwap = errors.New("source: reduction change not handled for this support")
)
