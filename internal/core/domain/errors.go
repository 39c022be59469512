package domain

import "errors"

var (
	// ErrUsernameTaken is returned when registering with a username that
	// already belongs to another account.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering with an email that already
	// belongs to another account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so that login responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive is returned when a deactivated account authenticates
	// successfully or presents a valid token.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrAccountNotFound is returned when the target account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidToken is returned for any token that fails validation:
	// bad signature, malformed structure, missing subject, or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidRole is returned when a role update names an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfModification is returned when an admin targets their own
	// account with a role update, deactivation, or delete.
	ErrSelfModification = errors.New("cannot modify own account")
)
