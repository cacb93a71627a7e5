package models

import "time"

// User is a Telegram user of the bot. APIToken is the TalentGraph bearer token
// issued by the backend; nil means the user is not signed in.
type User struct {
	ID             int64      `db:"id"`
	Username       *string    `db:"username"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	APIToken       *string    `db:"api_token"`
	CreatedAt      time.Time  `db:"created_at"`
	LastCheck      *time.Time `db:"last_check"`
	CheckEnabled   bool       `db:"check_enabled"`
	NotifyInterval int        `db:"notify_interval"` // in min
}

func (u *User) SignedIn() bool {
	return u != nil && u.APIToken != nil && *u.APIToken != ""
}

type UserSeenNotification struct {
	UserID         int64     `db:"user_id"`
	NotificationID int64     `db:"notification_id"`
	SeenAt         time.Time `db:"seen_at"`
}
