package errs

import "errors"

var ErrBadSignature = errors.New("signature verification failed")
var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidGross = errors.New("gross amount must be positive")
var ErrMissingField = errors.New("required field missing")
var ErrBadStatus = errors.New("unsupported payment status")
var ErrBadSchedule = errors.New("malformed commission schedule")
var ErrInvalidToken = errors.New("invalid token")
var ErrSettingsNotFound = errors.New("payment settings not found")
