package moderation

import "fmt"

// AdAction is a closed moderation action on an ad. Free-form strings from the
// wire are decoded through ParseAdAction; anything unrecognized is rejected at
// the boundary.
type AdAction string

const (
	AdApprove        AdAction = "approve"
	AdReject         AdAction = "reject"
	AdToggleFeatured AdAction = "toggle_featured"
	AdMarkSold       AdAction = "mark_sold"
	AdDelete         AdAction = "delete"
)

// ParseAdAction decodes a wire action string.
func ParseAdAction(s string) (AdAction, error) {
	switch AdAction(s) {
	case AdApprove, AdReject, AdToggleFeatured, AdMarkSold, AdDelete:
		return AdAction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// UserAction is a closed moderation action on a user account.
type UserAction string

const (
	UserVerify   UserAction = "verify"
	UserSuspend  UserAction = "suspend"
	UserBan      UserAction = "ban"
	UserActivate UserAction = "activate"
)

// ParseUserAction decodes a wire action string.
func ParseUserAction(s string) (UserAction, error) {
	switch UserAction(s) {
	case UserVerify, UserSuspend, UserBan, UserActivate:
		return UserAction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ReportAction is a closed resolution action on a report. The resolve_*
// variants cascade into the ad/user state machines atomically with the
// report's own status flip.
type ReportAction string

const (
	ReportResolve         ReportAction = "resolve"
	ReportResolveDeleteAd ReportAction = "resolve_delete_ad"
	ReportResolveBan      ReportAction = "resolve_ban_seller"
	ReportDismiss         ReportAction = "dismiss"
)

// ParseReportAction decodes a wire action string.
func ParseReportAction(s string) (ReportAction, error) {
	switch ReportAction(s) {
	case ReportResolve, ReportResolveDeleteAd, ReportResolveBan, ReportDismiss:
		return ReportAction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}
