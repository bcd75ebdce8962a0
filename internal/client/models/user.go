// Package models holds the client-side data model: the authenticated user,
// analysis records and the purchase-flow artifacts. The structs carry JSON
// tags matching the backend wire format so the api package can decode
// responses straight into them.
package models

// User is the authenticated identity as reported by the backend.
// Credits is the spendable balance; CreditsUsed is lifetime consumption.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at,omitempty"`
	LastLogin   string `json:"last_login,omitempty"`
	Credits     int    `json:"credits,omitempty"`
	CreditsUsed int    `json:"credits_used,omitempty"`
}
