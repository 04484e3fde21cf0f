package engine

import "errors"

var (
	// ErrNoSelection means the caller did not supply a valid choice for the current segment.
	ErrNoSelection = errors.New("no valid choice selected")
	// ErrMalformedSegment means a segment is neither a choice node nor a terminal node.
	ErrMalformedSegment = errors.New("malformed story segment")
	// ErrAtRoot means GoBack was called at the intro.
	ErrAtRoot = errors.New("already at the start of the story")
	// ErrCorruption means the choice path no longer matches the story graph.
	ErrCorruption = errors.New("story path does not match the story graph")
	// ErrNotAtOutcome means FinalOutcome was called before an ending was reached.
	ErrNotAtOutcome = errors.New("no outcome reached yet")
)

// IsInputError reports whether err is caused by user input rather than by the
// story graph. Input errors leave the session unchanged.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoSelection) || errors.Is(err, ErrAtRoot)
}

// IsCorruption reports whether err means the session can no longer trust its
// path and should be restarted.
func IsCorruption(err error) bool {
	return errors.Is(err, ErrCorruption) || errors.Is(err, ErrMalformedSegment)
}
