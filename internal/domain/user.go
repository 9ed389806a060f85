package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered player with a cumulative score. Created lazily on
// first login with score 0; the score only grows by match deltas.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"-"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
}

// MinUsernameLen is the shortest username accepted at login.
const MinUsernameLen = 3

// Validate trims and checks the username before any store access.
func (r *LoginRequest) Validate() (string, error) {
	username := strings.TrimSpace(r.Username)
	if len([]rune(username)) < MinUsernameLen {
		return "", fmt.Errorf("%w: username must have at least %d characters", ErrValidation, MinUsernameLen)
	}
	return username, nil
}

// RankingEntry is a single leaderboard row, at most five are ever returned.
type RankingEntry struct {
	Username string `json:"username"`
	Score    int64  `json:"score"`
}
