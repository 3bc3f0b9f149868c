package models

// User is the identity attached to a single live connection. The id is
// assigned server-side at connect time and is never reused; a reconnect
// produces a brand-new User.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}
