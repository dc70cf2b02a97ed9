package authstore

import (
	"encoding/json"
	"errors"
	"sync"
)

// Storage keys. Store is the only writer.
const (
	KeyIsLoggedIn = "isLoggedIn"
	KeyUser       = "user"
	KeyRole       = "role"
	KeyToken      = "token"
)

var persistedKeys = []string{KeyIsLoggedIn, KeyUser, KeyRole, KeyToken}

// Store holds the auth State and keeps storage in step with it: every
// transition writes or clears the persisted keys before it returns.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login records the signed-in user. The login flag is written last so a
// partial write never hydrates as a session; on failure storage is cleared
// and the state ends logged out, matching it.
func (s *Store) Login(user *User, role, token string) error {
	if user == nil {
		return errors.New("login requires a user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kv := range [][2]string{
		{KeyUser, string(data)},
		{KeyRole, role},
		{KeyToken, token},
		{KeyIsLoggedIn, "true"},
	} {
		if err := s.storage.Set(kv[0], kv[1]); err != nil {
			s.state = Reduce(s.state, LoggedOut())
			return errors.Join(err, s.clear())
		}
	}
	s.state = Reduce(s.state, LoggedIn(user, role, token))
	return nil
}

// Logout clears the state and every persisted key.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, LoggedOut())
	return s.clear()
}

func (s *Store) clear() error {
	var errs []error
	for _, key := range persistedKeys {
		if err := s.storage.Remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Hydrate restores the state from storage. Unreadable entries leave the
// store logged out and are cleared.
func (s *Store) Hydrate() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := Action{Kind: Hydrate}
	flag, _, err := s.storage.Get(KeyIsLoggedIn)
	if err != nil {
		s.state = Reduce(s.state, action)
		return s.state, err
	}
	if flag == "true" {
		raw, ok, err := s.storage.Get(KeyUser)
		if err != nil {
			s.state = Reduce(s.state, action)
			return s.state, err
		}
		var user User
		if ok && json.Unmarshal([]byte(raw), &user) == nil {
			action.IsLoggedIn = true
			action.User = &user
			action.Role, _, _ = s.storage.Get(KeyRole)
			action.Token, _, _ = s.storage.Get(KeyToken)
		}
	}
	s.state = Reduce(s.state, action)
	if flag != "" && !s.state.IsLoggedIn {
		return s.state, s.clear()
	}
	return s.state, nil
}
