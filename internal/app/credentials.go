package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nhle/task-planner/internal/credential"
	"github.com/nhle/task-planner/internal/model"
)

// ErrPasswordCancelled is returned when the user dismisses the password
// prompt.
var ErrPasswordCancelled = errors.New("password prompt cancelled")

// SecretPrompter asks the user for a value without echoing it.
type SecretPrompter interface {
	PromptSecret(ctx context.Context, title string) (string, bool, error)
}

// Vault is the keyring used for database passwords.
type Vault interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	FillPassword(db *model.DatabaseConfig) error
}

var _ Vault = (*credential.Vault)(nil)

// ResolvePassword fills db.Password from the keyring. When no password is
// stored yet the user is asked once and the answer is saved.
func ResolvePassword(ctx context.Context, db *model.DatabaseConfig, vault Vault, prompt SecretPrompter, logger log.FieldLogger) error {
	err := vault.FillPassword(db)
	if err == nil {
		return nil
	}
	if !errors.Is(err, credential.ErrNotFound) {
		return err
	}

	logger.WithField("key", db.CredentialKey()).Info("no stored database password, prompting")
	return SetPassword(ctx, db, vault, prompt)
}

// SetPassword asks for the database password and stores it in the keyring.
func SetPassword(ctx context.Context, db *model.DatabaseConfig, vault Vault, prompt SecretPrompter) error {
	title := fmt.Sprintf("Password for %s@%s (%s)", db.User, db.Host, db.Driver)
	password, ok, err := prompt.PromptSecret(ctx, title)
	if err != nil {
		return fmt.Errorf("prompting for password: %w", err)
	}
	if !ok {
		return ErrPasswordCancelled
	}

	if err := vault.Set(db.CredentialKey(), password); err != nil {
		return err
	}
	db.Password = password
	return nil
}

// ForgetPassword removes the stored database password.
func ForgetPassword(db model.DatabaseConfig, vault Vault) error {
	return vault.Delete(db.CredentialKey())
}
