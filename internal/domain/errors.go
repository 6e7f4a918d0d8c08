package domain

import "errors"

// Sentinel errors for the query pipeline's error taxonomy. All but
// ErrIndexMissing abort the query; ErrIndexMissing is recovered locally
// by the expander.
var (
	// ErrInputInvalid covers an empty topic list, a topic with an empty
	// question, zero documents selected, or an unknown tier.
	ErrInputInvalid = errors.New("corpus-reduce: invalid input")

	// ErrStorageUnavailable is returned when the storage collaborator
	// fails to read chunks, documents, or indices.
	ErrStorageUnavailable = errors.New("corpus-reduce: storage unavailable")

	// ErrIndexMissing signals a document has no stored co-occurrence
	// index. Recovered: expansion degrades to original terms only.
	ErrIndexMissing = errors.New("corpus-reduce: co-occurrence index missing")

	// ErrOversizedChunk names the case of a single chunk's envelope alone
	// exceeding maxCharsPerSuperChunk. No code path returns it: the packer
	// emits such a chunk oversize in its own super chunk, and the
	// orchestrator logs a warning for any rendered super chunk over the
	// limit.
	ErrOversizedChunk = errors.New("corpus-reduce: chunk envelope exceeds super chunk limit")

	// ErrCancelled names a query stopped by a cooperative cancellation
	// signal. ExecuteQuery does not return it: a cancelled run comes back
	// as a Result with Cancelled set and a nil error.
	ErrCancelled = errors.New("corpus-reduce: query cancelled")
)
