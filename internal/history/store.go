// Package history keeps recently observed chat messages in a local
// SQLite database. Its main consumer is mention completion, which needs a
// de-duplicated roster of usernames from recent traffic per channel.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Message is one observed chat message.
type Message struct {
	ID       string
	Channel  string
	Username string
	Body     string
	SentAt   time.Time
}

// Store is the message history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id       TEXT PRIMARY KEY,
	channel  TEXT NOT NULL,
	username TEXT NOT NULL,
	body     TEXT NOT NULL,
	sent_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_channel_sent
	ON messages (channel, sent_at DESC);
`

// Open opens (creating if needed) the history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one message and returns it with its generated ID and
// timestamp filled in.
func (s *Store) Append(channel, username, body string) (Message, error) {
	msg := Message{
		ID:       newMessageID(),
		Channel:  channel,
		Username: username,
		Body:     body,
		SentAt:   time.Now(),
	}

	_, err := s.db.Exec(
		`INSERT INTO messages (id, channel, username, body, sent_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Channel, msg.Username, msg.Body, msg.SentAt.UnixMilli(),
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to record message: %w", err)
	}
	return msg, nil
}

// Recent returns up to limit messages for a channel, oldest first, so
// they render in conversation order.
func (s *Store) Recent(channel string, limit int) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT id, channel, username, body, sent_at FROM messages
		 WHERE channel = ? ORDER BY sent_at DESC, id DESC LIMIT ?`,
		channel, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()

	var newest []Message
	for rows.Next() {
		var msg Message
		var sentAt int64
		if err := rows.Scan(&msg.ID, &msg.Channel, &msg.Username, &msg.Body, &sentAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.SentAt = time.UnixMilli(sentAt)
		newest = append(newest, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent messages: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest, nil
}

// Usernames returns the de-duplicated usernames seen in a channel, most
// recently active first. This feeds mention completion.
func (s *Store) Usernames(channel string, limit int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT username FROM messages WHERE channel = ?
		 GROUP BY username ORDER BY MAX(sent_at) DESC LIMIT ?`,
		channel, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usernames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usernames: %w", err)
	}
	return names, nil
}

// newMessageID creates a time-ordered unique message ID.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("msg_fallback_%d", time.Now().UnixNano())
	}
	return id.String()
}
