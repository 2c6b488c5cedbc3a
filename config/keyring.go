package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name under which credentials are stored in
// the OS keyring. The account email is the keyring user.
const KeyringService = "punchclock"

// ErrNoKeyringSecret is returned when useKeyring is set but the keyring holds
// no secret for the configured email.
var ErrNoKeyringSecret = errors.New("config: no secret stored in the keyring")

// resolveCredentials fills Password from the OS keyring when the keyring is
// enabled and no password or API token was configured.
func (c *Config) resolveCredentials() error {
	if !c.UseKeyring || c.Password != "" || c.APIToken != "" {
		return nil
	}

	secret, err := keyring.Get(KeyringService, c.Email)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w for %s", ErrNoKeyringSecret, c.Email)
		}
		return fmt.Errorf("keyring.Get: %w", err)
	}

	c.Password = secret
	return nil
}

// StoreSecret saves secret in the OS keyring for email.
func StoreSecret(email, secret string) error {
	err := keyring.Set(KeyringService, email, secret)
	if err != nil {
		return fmt.Errorf("keyring.Set: %w", err)
	}
	return nil
}
