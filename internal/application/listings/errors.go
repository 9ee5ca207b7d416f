package listings

import (
	"fmt"

	"souqah-backend/internal/pkg/apperrors"
)

var (
	ErrBadPage     = fmt.Errorf("%w: page must be a positive integer", apperrors.ErrQuery)
	ErrBadLimit    = fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrQuery)
	ErrBadMinPrice = fmt.Errorf("%w: min_price must be a non-negative number", apperrors.ErrQuery)
	ErrBadMaxPrice = fmt.Errorf("%w: max_price must be a non-negative number", apperrors.ErrQuery)
	ErrBadSort     = fmt.Errorf("%w: unknown sort key", apperrors.ErrQuery)
)
