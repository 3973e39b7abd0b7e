package optsettings

import "errors"

// Error taxonomy per spec §7. ConfigurationError and InternalInvariant are
// fatal at construction; ConstraintViolation is handled locally by callers
// and never reaches this package as an error. EmptySearchSpace is returned
// by NewSettings for a slot with no affixes (see ErrEmptySearchSpace).
var (
	// ErrUnknownInfusionMode is a ConfigurationError: the infusion mode
	// string did not match one of the five recognized values.
	ErrUnknownInfusionMode = errors.New("optsettings: unknown infusion mode")

	// ErrInvalidSettings is a ConfigurationError: NewSettings wraps it
	// around an unrecognized rankby string. A slot with zero affixes is
	// reported as ErrEmptySearchSpace instead; symmetric slot pairs and
	// infusion limits are not validated.
	ErrInvalidSettings = errors.New("optsettings: invalid settings")

	// ErrEmptySearchSpace signals affixes.length == 0 (§7). NewSettings
	// returns it when a raw slot lists no affixes at all, a malformed
	// document. internal/optimizer.NewEngine recognizes the same empty
	// condition on an already-built Settings but does not treat it as
	// fatal: the engine is still constructed and its first Step call
	// produces the documented terminal Progress{Changed:true,
	// CalculationRuns:0, NewList:[]} rather than an error.
	ErrEmptySearchSpace = errors.New("optsettings: empty search space")
)
