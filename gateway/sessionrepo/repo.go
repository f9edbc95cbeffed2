// Package sessionrepo stores active sessions keyed by an opaque session
// handle. Sessions live only in process memory — a gateway restart
// invalidates all of them, by design.
package sessionrepo

import (
	"time"

	"github.com/prosthetix/reports-platform/identity"
)

type Session struct {
	// Tokens issued by the identity provider
	AccessToken  string
	RefreshToken string
	IDToken      string

	// Identity claims cached at login for display; the report API always
	// re-verifies the token itself.
	Identity identity.Identity

	CreatedAt time.Time
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
