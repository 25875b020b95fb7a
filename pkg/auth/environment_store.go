package auth

import (
	"os"
	"time"
)

// Environment variables read by EnvironmentStore. They match the names the
// config package reads.
const (
	EnvVKToken   = "VKBACKUP_VK_TOKEN"
	EnvVKUserID  = "VKBACKUP_VK_USER_ID"
	EnvDiskToken = "VKBACKUP_DISK_TOKEN"
)

// EnvironmentStore is a read-only store over environment variables
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment tokens under the given name, or
// "default" when name is empty. Both tokens must be set.
func (e *EnvironmentStore) Retrieve(name string) (*Account, error) {
	vkToken := os.Getenv(EnvVKToken)
	diskToken := os.Getenv(EnvDiskToken)
	if vkToken == "" || diskToken == "" {
		return nil, ErrCredentialsNotFound
	}

	if name == "" {
		name = "default"
	}
	return &Account{
		Name:         name,
		VKToken:      vkToken,
		VKUserID:     os.Getenv(EnvVKUserID),
		DiskToken:    diskToken,
		LastModified: time.Now(),
	}, nil
}

// List returns a single account if environment variables are set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

func (e *EnvironmentStore) Exists(name string) bool {
	return os.Getenv(EnvVKToken) != "" && os.Getenv(EnvDiskToken) != ""
}
