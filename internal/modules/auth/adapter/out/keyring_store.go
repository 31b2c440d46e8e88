package out

import (
	"errors"

	"github.com/zalando/go-keyring"

	authout "leadclip/internal/modules/auth/port/out"
	apperrors "leadclip/internal/platform/errors"
)

const (
	keyringService = "leadclip"
	keyringAccount = "api-token"
)

// KeyringTokenStore keeps the bearer token in the OS keyring so it
// never lands in a plain file under the profile dir.
type KeyringTokenStore struct{}

func NewKeyringTokenStore() authout.TokenStore {
	return &KeyringTokenStore{}
}

func (KeyringTokenStore) Save(token string) error {
	return keyring.Set(keyringService, keyringAccount, token)
}

func (KeyringTokenStore) Load() (string, error) {
	token, err := keyring.Get(keyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", apperrors.ErrNotLoggedIn
	}
	return token, err
}

func (KeyringTokenStore) Clear() error {
	err := keyring.Delete(keyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
