package domain

import "errors"

// ErrPoolExhausted marks a draw requested after every sentence was used.
var ErrPoolExhausted = errors.New("pool exhausted")

// ErrSequenceBusy marks a draw requested while a reveal is still running.
var ErrSequenceBusy = errors.New("sequence busy")

// ErrNoSentences is returned when a pool is built from an empty list.
var ErrNoSentences = errors.New("no sentences")

// ErrInvalidTimings is returned when the reveal offsets are not increasing.
var ErrInvalidTimings = errors.New("invalid timings")
