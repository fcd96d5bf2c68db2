package auth

import "time"

// Session is one live login. A user may hold at most MaxSessions at a
// time; logout and password changes delete sessions.
type Session struct {
	ID        string
	Email     string
	Token     string
	LoginTime time.Time
}

const MaxSessions = 3
