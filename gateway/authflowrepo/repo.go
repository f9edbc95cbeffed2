// Package authflowrepo holds the pending-authorization state of login
// attempts, keyed by the OAuth state parameter. An entry exists only
// between /auth/login and /auth/callback and is consumed exactly once.
package authflowrepo

import "time"

type PendingLogin struct {
	CodeVerifier string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, pending *PendingLogin) error
	// Consume retrieves and deletes the entry in one atomic step, so a
	// state value can never be redeemed twice.
	Consume(state string) (*PendingLogin, error)
}
