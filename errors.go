package jsonproto

import "errors"

// Programmer/protocol errors. These signal misuse of the engine itself
// (bad type expressions, duplicate declarations, frozen mutation) rather
// than problems with the data being processed. Data-shape problems are
// reported through the Issue/ValidationError surface in issues.go, never
// through these sentinels.
var (
	ErrUnknownCanonicalType   = errors.New("jsonproto: unknown canonical type")
	ErrCyclicTypeReference    = errors.New("jsonproto: cyclic type reference")
	ErrUnresolvedForwardRef   = errors.New("jsonproto: unresolved forward reference")
	ErrMalformedPointer       = errors.New("jsonproto: malformed pointer")
	ErrMalformedPath          = errors.New("jsonproto: malformed path")
	ErrDuplicateDiscriminator = errors.New("jsonproto: duplicate discriminator value")
	ErrFrozenRecordType       = errors.New("jsonproto: record type is frozen")
	ErrNoHandlerForType       = errors.New("jsonproto: no handler registered for canonical type")
	ErrInvalidDefaultPair     = errors.New("jsonproto: default and default_factory are mutually exclusive")
	ErrNotARecordType         = errors.New("jsonproto: target is not a declared record type")
	ErrUnknownField           = errors.New("jsonproto: unknown field")
	ErrPatchTargetNotFound    = errors.New("jsonproto: patch target not found")
	ErrUnsupportedShape       = errors.New("jsonproto: unsupported source or target shape")
	ErrNoSerializer           = errors.New("jsonproto: no serializer configured")
	ErrNoOperationRequested   = errors.New("jsonproto: at least one of validate, coerce, convert must be true")
	ErrTypeHintRequired       = errors.New("jsonproto: type_hint must be given when value is not a record instance")
	ErrSourceShapeRequired    = errors.New("jsonproto: source shape cannot be inferred, please provide it explicitly")
)
