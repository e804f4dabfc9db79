package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var ErrNoSession = errors.New("session not found")

// Session links a browser cookie to the API credentials of a logged-in user.
type Session struct {
	ID        int64
	Token     string
	Username  string
	APIToken  string
	ExpiresAt time.Time
}

func CreateSession(username, apiToken string, ttl time.Duration) (*Session, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	s := &Session{
		Token:     hex.EncodeToString(b),
		Username:  username,
		APIToken:  apiToken,
		ExpiresAt: time.Now().Add(ttl).Truncate(time.Second),
	}

	res, err := DB.Exec(
		"INSERT INTO sessions (token, username, api_token, expires_at) VALUES (?, ?, ?, ?)",
		s.Token, s.Username, s.APIToken, s.ExpiresAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return s, nil
}

// GetSession returns the live session for token. Expired sessions are
// deleted and reported as ErrNoSession.
func GetSession(token string) (*Session, error) {
	var s Session
	var expires int64
	err := DB.QueryRow(
		"SELECT id, token, username, api_token, expires_at FROM sessions WHERE token = ?", token,
	).Scan(&s.ID, &s.Token, &s.Username, &s.APIToken, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	s.ExpiresAt = time.Unix(expires, 0)
	if time.Now().After(s.ExpiresAt) {
		DeleteSession(token)
		return nil, ErrNoSession
	}
	return &s, nil
}

func DeleteSession(token string) {
	DB.Exec("DELETE FROM sessions WHERE token = ?", token)
}

// PurgeExpired removes every expired session and reports how many were removed.
func PurgeExpired(now time.Time) (int64, error) {
	res, err := DB.Exec("DELETE FROM sessions WHERE expires_at < ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
