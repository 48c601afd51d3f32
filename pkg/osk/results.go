package osk

import "errors"

var (
	ErrCancelled = errors.New("operation cancelled by user")
)

// KeyboardResult is the text the user confirmed.
type KeyboardResult struct {
	Text string
}
