package application

import "errors"

var (
	// ErrInvalidCredentials signals an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden signals an authenticated caller acting on someone else's resource.
	ErrForbidden = errors.New("access denied")
)
