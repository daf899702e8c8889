package delta

import "errors"

var (
	// ErrCannotRetainNonObject is returned when a retain targets an embed
	// but the value at that position is not a one-key embed object.
	ErrCannotRetainNonObject = errors.New("cannot retain a non-object value")

	// ErrEmbedTypeMismatch is returned when two embed values brought
	// together by the algebra have different top-level type keys.
	ErrEmbedTypeMismatch = errors.New("embed types do not match")

	// ErrUnknownEmbedType is returned when the algebra encounters an embed
	// type with no registered handler.
	ErrUnknownEmbedType = errors.New("no handler registered for embed type")

	// ErrNotADocument is returned when Diff is invoked on a delta that
	// contains non-insert ops.
	ErrNotADocument = errors.New("only documents can be diffed")

	// ErrInvalidOp is returned when decoding an op that does not set
	// exactly one of insert, delete, retain.
	ErrInvalidOp = errors.New("op must set exactly one of insert, delete, retain")
)
