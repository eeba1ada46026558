// Package session persists the logged-in user in the system keyring.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/model"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.App
	account = "current-user"
)

// ErrNotLoggedIn is returned when no user is stored.
var ErrNotLoggedIn = errors.New("not logged in, run `critique login`")

// Save stores user as the current user, replacing any previous one.
func Save(user model.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	if err := keyring.Set(service, account, string(b)); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Current returns the stored user.
func Current() (model.User, error) {
	raw, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return model.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return model.User{}, fmt.Errorf("session load: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.User{}, fmt.Errorf("session load: %w", err)
	}
	return user, nil
}

// UserID is the id of the stored user.
func UserID() (int, error) {
	user, err := Current()
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Clear forgets the current user. Clearing an empty session is not an error.
func Clear() error {
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
