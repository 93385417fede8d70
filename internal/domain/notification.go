package domain

import "time"

type NotificationID string

type Notification struct {
	ID        NotificationID
	AccountID AccountID
	Title     string
	Message   string
	Kind      NoticeKind
	Read      bool
	Timestamp time.Time
}
