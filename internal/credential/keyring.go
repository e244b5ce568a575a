package credential

import (
	"errors"
	"fmt"
	"slices"

	"github.com/99designs/keyring"
)

const serviceName = "web3hub"

// KeyWalletToken is the keyring entry holding the wallet RPC bearer token.
const KeyWalletToken = "wallet-rpc-token"

// Known lists the entries the application reads.
var Known = []string{KeyWalletToken}

// ErrUnknownKey is returned when writing an entry the application never reads.
var ErrUnknownKey = errors.New("unknown credential key")

// Store reads and writes secrets in a keyring.
type Store struct {
	ring keyring.Keyring
}

// NewStore wraps an already opened keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open opens the system keyring, falling back to an encrypted file under
// ~/.config/web3hub/credentials when no OS keychain is available.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/web3hub/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("web3hub-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// Get returns the secret stored under key.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Lookup is like Get but treats a missing entry as an empty value.
func (s *Store) Lookup(key string) (string, error) {
	v, err := s.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	return v, err
}

// Set stores value under key. Only Known keys are accepted.
func (s *Store) Set(key, value string) error {
	if !slices.Contains(Known, key) {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing entry is not an error.
func (s *Store) Delete(key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// Keys returns the names of the stored entries.
func (s *Store) Keys() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}
