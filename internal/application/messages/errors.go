package messages

import (
	"fmt"

	"souqah-backend/internal/pkg/apperrors"
)

var (
	ErrBodyRequired     = fmt.Errorf("%w: message body is required", apperrors.ErrValidation)
	ErrSelfMessage      = fmt.Errorf("%w: sender and receiver must differ", apperrors.ErrValidation)
	ErrReceiverRequired = fmt.Errorf("%w: receiver is required when replying on your own ad", apperrors.ErrValidation)
	ErrAdNotFound       = fmt.Errorf("%w: ad", apperrors.ErrNotFound)
	ErrReceiverNotFound = fmt.Errorf("%w: receiver", apperrors.ErrNotFound)
	ErrSenderBanned     = fmt.Errorf("%w: banned accounts cannot send messages", apperrors.ErrForbidden)
)
