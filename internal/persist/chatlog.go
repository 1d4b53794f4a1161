package persist

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const chatSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id    TEXT NOT NULL,
	sender     TEXT NOT NULL,
	text       TEXT NOT NULL,
	recipient  TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room_id, id);
`

// ChatLog is the durable, append-only chat history, one SQLite database for
// all rooms. Appends are committed before the caller sees success.
type ChatLog struct {
	db *sql.DB

	now func() time.Time
}

func OpenChatLog(path string) (*ChatLog, error) {
	if path == "" {
		return nil, fmt.Errorf("chat log path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening chat db: %w", err)
	}

	// A single writer avoids SQLITE_BUSY under concurrent commands.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(chatSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating chat schema: %w", err)
	}

	return &ChatLog{db: db, now: time.Now}, nil
}

func (l *ChatLog) Close() error {
	return l.db.Close()
}

// Append adds one message to a room's log. An empty recipient means the
// message is visible to the whole room.
func (l *ChatLog) Append(roomId, sender, text, recipient string) error {
	_, err := l.db.Exec(
		`INSERT INTO messages (room_id, sender, text, recipient, created_at) VALUES (?, ?, ?, ?, ?)`,
		roomId, sender, text, recipient, l.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// AppendBatch writes several messages in a single transaction. CreatedAt on
// the inputs is ignored; every row gets the same append time.
func (l *ChatLog) AppendBatch(msgs []ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}

	created := l.now().Unix()
	for _, m := range msgs {
		_, err := tx.Exec(
			`INSERT INTO messages (room_id, sender, text, recipient, created_at) VALUES (?, ?, ?, ?, ?)`,
			m.RoomId, m.Sender, m.Text, m.Recipient, created,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("appending batch message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest messages in the room that the
// viewer may see: room-visible messages plus whispers the viewer sent or
// received. Results are ordered oldest first.
func (l *ChatLog) Recent(roomId string, limit int, viewer string) ([]ChatMessage, error) {
	rows, err := l.db.Query(
		`SELECT room_id, sender, text, recipient, created_at
		   FROM messages
		  WHERE room_id = ? AND (recipient = '' OR recipient = ? OR sender = ?)
		  ORDER BY id DESC LIMIT ?`,
		roomId, viewer, viewer, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var m ChatMessage
		var created int64
		if err := rows.Scan(&m.RoomId, &m.Sender, &m.Text, &m.Recipient, &created); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}

	// Reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Prune drops everything older than the keep newest messages in each room.
func (l *ChatLog) Prune(keep int) error {
	rooms, err := l.db.Query(`SELECT DISTINCT room_id FROM messages`)
	if err != nil {
		return fmt.Errorf("listing rooms: %w", err)
	}
	var roomIds []string
	for rooms.Next() {
		var id string
		if err := rooms.Scan(&id); err != nil {
			rooms.Close()
			return fmt.Errorf("scanning room id: %w", err)
		}
		roomIds = append(roomIds, id)
	}
	if err := rooms.Err(); err != nil {
		rooms.Close()
		return fmt.Errorf("reading rooms: %w", err)
	}
	rooms.Close()

	for _, roomId := range roomIds {
		_, err := l.db.Exec(
			`DELETE FROM messages
			  WHERE room_id = ?
			    AND id <= COALESCE(
			        (SELECT id FROM messages WHERE room_id = ? ORDER BY id DESC LIMIT 1 OFFSET ?), 0)`,
			roomId, roomId, keep,
		)
		if err != nil {
			return fmt.Errorf("pruning room %s: %w", roomId, err)
		}
	}
	return nil
}
