package auth

import (
	"errors"
	"fmt"

	"souqah-backend/internal/pkg/apperrors"
)

var (
	ErrNameRequired     = fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	ErrInvalidPhone     = fmt.Errorf("%w: a valid Saudi mobile number is required", apperrors.ErrValidation)
	ErrWeakPassword     = fmt.Errorf("%w: password must be at least 8 characters with a letter and a digit", apperrors.ErrValidation)
	ErrEmailTaken       = fmt.Errorf("%w: email is already registered", apperrors.ErrValidation)
	ErrAccountSuspended = fmt.Errorf("%w: account is suspended", apperrors.ErrForbidden)
	ErrAccountBanned    = fmt.Errorf("%w: account is banned", apperrors.ErrForbidden)

	// Login failures map to 401 in the handler, not to the shared kinds.
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrBadCredentials        = errors.New("Invalid email or password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)
