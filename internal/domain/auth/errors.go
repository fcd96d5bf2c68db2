package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNotJoinedYet       = errors.New("user cannot log in before the joining date")
	ErrUserDeleted        = errors.New("deleted user cannot log in to the system")
	ErrSessionLimit       = errors.New("cannot use more than 3 sessions")
	ErrWrongPassword      = errors.New("your current password is wrong")
	ErrNotLoggedIn        = errors.New("you are not logged in")
	ErrInvalidToken       = errors.New("invalid token")
)
