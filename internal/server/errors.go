package server

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt fails.
	// Deliberately indistinct: unknown name and wrong password look the same.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession is returned when a request carries no usable session
	ErrNoSession = errors.New("no active session")
)
