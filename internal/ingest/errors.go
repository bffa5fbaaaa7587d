package ingest

import "errors"

// Load-phase failures. Each is terminal for a load; callers match with errors.Is.
var (
	// ErrResourceUnavailable means the CSV resource could not be retrieved
	ErrResourceUnavailable = errors.New("csv resource unavailable")

	// ErrParseFailure means the CSV could not be tokenized
	ErrParseFailure = errors.New("csv parse failure")

	// ErrLoadFailure covers every other load error
	ErrLoadFailure = errors.New("load failure")
)

// classify wraps err in ErrLoadFailure unless it already carries a load sentinel
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrResourceUnavailable) || errors.Is(err, ErrParseFailure) || errors.Is(err, ErrLoadFailure) {
		return err
	}
	return errors.Join(ErrLoadFailure, err)
}
