package moderation

import (
	"fmt"

	"souqah-backend/internal/pkg/apperrors"
)

var (
	ErrUnknownAction  = fmt.Errorf("%w: unknown action", apperrors.ErrValidation)
	ErrAdNotFound     = fmt.Errorf("%w: ad", apperrors.ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("%w: user", apperrors.ErrNotFound)
	ErrReportNotFound = fmt.Errorf("%w: report", apperrors.ErrNotFound)
)

// invalidAd builds the rejection for an illegal ad transition, naming the
// action and the state it was attempted from.
func invalidAd(action AdAction, status string) error {
	return fmt.Errorf("%w: cannot %s an ad in status %q", apperrors.ErrInvalidTransition, action, status)
}

func invalidUser(action UserAction, status string) error {
	return fmt.Errorf("%w: cannot %s a user in status %q", apperrors.ErrInvalidTransition, action, status)
}

func invalidReport(action ReportAction, status string) error {
	return fmt.Errorf("%w: cannot %s a report in status %q", apperrors.ErrInvalidTransition, action, status)
}
