package fpl

import (
	"errors"
	"fmt"
)

// FetchError marks failures of the external FPL API (unreachable,
// non-2xx, malformed body). The web layer renders these inline.
type FetchError struct {
	URL    string
	nested error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fpl: %s: %s", e.URL, e.nested.Error())
}

func (e *FetchError) Unwrap() error {
	return e.nested
}

func IsFetchError(err error) bool {
	fetchError := &FetchError{}
	return errors.As(err, &fetchError)
}

func fetchError(url string, err error) error {
	return &FetchError{URL: url, nested: err}
}
