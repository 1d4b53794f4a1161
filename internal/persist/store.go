package persist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/emberfell/mud/internal/storage"
)

const DefaultChatRetention = 500

// Store is the shipped Gateway implementation: player records as JSON assets
// on disk, chat history in SQLite. Player mutations are serialized by a
// single lock; the spec's per-room locking lives in the engine above this.
type Store struct {
	mu      sync.Mutex
	players storage.Storer[*PlayerRecord]
	chat    *ChatLog

	chatRetention int
}

type StoreOpt func(*Store)

func WithChatRetention(keep int) StoreOpt {
	return func(s *Store) {
		s.chatRetention = keep
	}
}

func NewStore(players storage.Storer[*PlayerRecord], chat *ChatLog, opts ...StoreOpt) *Store {
	s := &Store{
		players:       players,
		chat:          chat,
		chatRetention: DefaultChatRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(username string) string {
	return strings.ToLower(username)
}

func (s *Store) PlayerExists(username string) bool {
	return s.players.Get(key(username)) != nil
}

func (s *Store) VerifyPassword(username, password string) bool {
	rec := s.players.Get(key(username))
	if rec == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) == nil
}

func (s *Store) IsActive(username string) bool {
	rec := s.players.Get(key(username))
	return rec != nil && rec.Active
}

func (s *Store) Role(username string) (string, bool) {
	rec := s.players.Get(key(username))
	if rec == nil {
		return "", false
	}
	return rec.Role, true
}

func (s *Store) CreatePlayer(username, password, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.players.Get(key(username)) != nil {
		return fmt.Errorf("player %q already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.players.Save(key(username), &PlayerRecord{
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	})
}

// mutate applies fn to the player's record under the store lock and saves
// the result.
func (s *Store) mutate(username string, fn func(*PlayerRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.players.Get(key(username))
	if rec == nil {
		return fmt.Errorf("player %q not found", username)
	}

	fn(rec)
	return s.players.Save(key(username), rec)
}

func (s *Store) SetRole(username, role string) error {
	return s.mutate(username, func(rec *PlayerRecord) { rec.Role = role })
}

func (s *Store) SetActive(username string, active bool) error {
	return s.mutate(username, func(rec *PlayerRecord) { rec.Active = active })
}

func (s *Store) Room(username string) (string, bool) {
	rec := s.players.Get(key(username))
	if rec == nil || rec.Room == "" {
		return "", false
	}
	return rec.Room, true
}

func (s *Store) SetRoom(username, roomId string) error {
	return s.mutate(username, func(rec *PlayerRecord) { rec.Room = roomId })
}

func (s *Store) Inventory(username string) ([]string, error) {
	rec := s.players.Get(key(username))
	if rec == nil {
		return nil, fmt.Errorf("player %q not found", username)
	}
	out := make([]string, len(rec.Inventory))
	copy(out, rec.Inventory)
	return out, nil
}

func (s *Store) SetInventory(username string, items []string) error {
	held := make([]string, len(items))
	copy(held, items)
	return s.mutate(username, func(rec *PlayerRecord) { rec.Inventory = held })
}

func (s *Store) AppendMessage(roomId, sender, text, recipient string) error {
	return s.chat.Append(roomId, sender, text, recipient)
}

func (s *Store) AppendMessages(msgs []ChatMessage) error {
	return s.chat.AppendBatch(msgs)
}

func (s *Store) Messages(roomId string, limit int, viewer string) ([]ChatMessage, error) {
	return s.chat.Recent(roomId, limit, viewer)
}

// Tick prunes chat history down to the retention limit per room. Driven by
// the tick driver.
func (s *Store) Tick(ctx context.Context) error {
	return s.chat.Prune(s.chatRetention)
}
