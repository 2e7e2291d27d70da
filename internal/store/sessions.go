package store

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/askdeck/askdeck/internal/chat"
)

// StorageKeyPrefix namespaces per-user history keys inside the KV store.
const StorageKeyPrefix = "chat_history_"

// SessionStore persists each user's session collection as one JSON value
// under a prefixed identity key. An empty user key means a guest: guests
// always see an empty collection and nothing is ever written for them.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

func (o *SessionStore) key(userKey string) string {
	return StorageKeyPrefix + userKey
}

// Load returns the user's sessions, most recently updated first. Absent or
// malformed data yields an empty collection, never an error.
func (o *SessionStore) Load(userKey string) []chat.Session {
	if userKey == "" {
		return nil
	}
	raw, ok, err := o.kv.Get(o.key(userKey))
	if err != nil || !ok {
		return nil
	}
	var sessions []chat.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil
	}
	return sessions
}

// Save overwrites the user's whole collection. No-op for guests.
func (o *SessionStore) Save(userKey string, sessions []chat.Session) error {
	if userKey == "" {
		return nil
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return o.kv.Set(o.key(userKey), string(data))
}

// Delete removes the session with the given id if present and persists the
// result. Returns the remaining collection.
func (o *SessionStore) Delete(userKey, sessionID string) ([]chat.Session, error) {
	sessions := o.Load(userKey)
	remaining := lo.Filter(sessions, func(s chat.Session, _ int) bool {
		return s.ID != sessionID
	})
	if err := o.Save(userKey, remaining); err != nil {
		return remaining, err
	}
	return remaining, nil
}
