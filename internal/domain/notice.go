package domain

import "fmt"

type NoticeKind string

const (
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

type NoticeTemplate struct {
	Title   string
	Message string
	Kind    NoticeKind
}

// ExpirationNotice returns the reminder an account owner should receive for info, if any.
// Entitlements expiring today produce no reminder.
func ExpirationNotice(info ExpirationInfo, locale Locale) (NoticeTemplate, bool) {
	locale = locale.orDefault()

	switch {
	case !info.Known():
		return NoticeTemplate{}, false
	case info.IsExpired:
		return NoticeTemplate{Title: locale.expiredTitle, Message: locale.expiredMessage, Kind: NoticeError}, true
	case info.DaysUntilExpiration == 1:
		return NoticeTemplate{Title: locale.tomorrowTitle, Message: locale.tomorrowMessage, Kind: NoticeWarning}, true
	case info.Status == StatusWarning && info.DaysUntilExpiration > 1:
		return NoticeTemplate{
			Title:   locale.soonTitle,
			Message: fmt.Sprintf(locale.soonMessage, info.DaysUntilExpiration),
			Kind:    NoticeWarning,
		}, true
	default:
		return NoticeTemplate{}, false
	}
}
