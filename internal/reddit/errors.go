package reddit

import "fmt"

// ErrorKind classifies a fetch failure. Only Profile and Unspecified escape
// SnapshotFetcher.Fetch; the rest are recovered internally and recorded here
// so log lines and tests can name them.
type ErrorKind string

const (
	// ErrProfile means the authenticated profile could not be read.
	// Fatal: nothing useful can be built without it.
	ErrProfile ErrorKind = "profile"

	// ErrSavedComments means the comment tree of one saved post failed.
	// Recovered: the item is kept with an empty reply list.
	ErrSavedComments ErrorKind = "saved_comments"

	// ErrSavedList means the saved listing as a whole failed.
	// Recovered: the snapshot carries an empty saved list.
	ErrSavedList ErrorKind = "saved_list"

	// ErrSubscriptions means the subscription listing failed.
	// Recovered: the snapshot carries the unavailable sentinel.
	ErrSubscriptions ErrorKind = "subscriptions"

	// ErrUnspecified wraps any other failure during the fetch. Fatal.
	ErrUnspecified ErrorKind = "unspecified"
)

// FetchError is the typed failure returned by SnapshotFetcher.Fetch.
type FetchError struct {
	Kind ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("reddit fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
