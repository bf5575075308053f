package opt

import "errors"

// Unsupported-feature and shape errors raised by optimizer adapters.
// These are configuration/programmer errors: they propagate uncaught to
// the harness and there is no degraded-mode fallback, retry or partial
// success. Match with errors.Is.
var (
	// ErrTabularSpace: the problem supplies an enumerated-table
	// configuration space the optimizer cannot search.
	ErrTabularSpace = errors.New("tabular configuration spaces are not supported")

	// ErrInvalidSpace: the configuration space is neither of the known
	// kinds.
	ErrInvalidSpace = errors.New("invalid configuration space type")

	// ErrMissingFidelity: the optimizer requires a fidelity and the
	// problem defines none.
	ErrMissingFidelity = errors.New("problem does not define a fidelity")

	// ErrManyFidelity: the problem defines a multi-dimensional fidelity
	// mapping.
	ErrManyFidelity = errors.New("many-fidelity problems are not supported")

	// ErrInvalidFidelity: the fidelity is neither absent, single, nor
	// mapping-shaped.
	ErrInvalidFidelity = errors.New("invalid fidelity shape")

	// ErrCostAware: the problem declares cost tracking and the
	// optimizer has no cost-aware feedback path.
	ErrCostAware = errors.New("cost-aware problems are not supported")

	// ErrInvalidObjectives: the objectives are not a usable named
	// declaration, or a result omits a declared objective.
	ErrInvalidObjectives = errors.New("invalid objective shape")

	// ErrInvalidCosts: the cost declaration is malformed.
	ErrInvalidCosts = errors.New("invalid cost shape")

	// ErrForeignInfo: a Tell carried an optimizer-info payload that did
	// not come from this optimizer's Ask.
	ErrForeignInfo = errors.New("optimizer info does not belong to this optimizer")
)
