package model

import "errors"

// ErrInvalidInput marks out-of-domain input: a negative metric, a score
// outside [0,100], or an unparseable record. Callers match it with errors.Is
// to pick the exit path; the wrapping message names the offending field.
var ErrInvalidInput = errors.New("invalid input")
