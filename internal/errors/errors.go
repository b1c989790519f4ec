// internal/errors/errors.go
package errors

import "fmt"

// ErrInvalidRepoFormat is returned when a repository full name is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// ErrEmptyTrendingPage is returned when a trending page was fetched successfully
// but yielded zero parsed items. Zero items where items were expected means the
// page structure changed, not that nothing is trending.
type ErrEmptyTrendingPage struct {
	URL string
}

func (e *ErrEmptyTrendingPage) Error() string {
	return fmt.Sprintf("trending page %q yielded no parseable items", e.URL)
}

// ErrMalformedAnalysis is returned when the generative-text service responds
// with content that does not decode into the expected analysis schema.
type ErrMalformedAnalysis struct {
	Reason string
}

func (e *ErrMalformedAnalysis) Error() string {
	return fmt.Sprintf("malformed model analysis: %s", e.Reason)
}
