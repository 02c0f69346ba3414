// Package auth provides the credential store and the AuthProvider surface
// the core trusts. The core never inspects credentials; it only receives
// the validated username an authentication produced.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"fjacquet/fintrack/internal/ledgererror"
	"fjacquet/fintrack/internal/logging"
)

// Provider authenticates a username and yields the validated username
// scope the core operates within.
type Provider interface {
	Authenticate(username, password string) (string, error)
}

// credential is one persisted username/hash pair.
type credential struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash
}

// credentialsFile mirrors the persisted credentials layout.
type credentialsFile struct {
	Credentials struct {
		Auth []credential `json:"Auth"`
	} `json:"credentials"`
}

// CredentialStore is a JSON-file-backed Provider with bcrypt password
// hashing.
type CredentialStore struct {
	path   string
	creds  map[string]string // username -> bcrypt hash
	logger logging.Logger
}

// NewCredentialStore loads (or lazily creates) the credentials file at
// path.
func NewCredentialStore(path string, logger logging.Logger) (*CredentialStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	s := &CredentialStore{
		path:   path,
		creds:  make(map[string]string),
		logger: logger.WithField("component", "auth"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CredentialStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading credentials file: %w", err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing credentials file %s: %w", s.path, err)
	}
	for _, c := range file.Credentials.Auth {
		s.creds[c.Username] = c.Password
	}
	return nil
}

func (s *CredentialStore) save() error {
	var file credentialsFile
	for username, hash := range s.creds {
		file.Credentials.Auth = append(file.Credentials.Auth, credential{Username: username, Password: hash})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("error creating credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing credentials file: %w", err)
	}
	return nil
}

// Exists reports whether a username is registered.
func (s *CredentialStore) Exists(username string) bool {
	_, ok := s.creds[normalizeUsername(username)]
	return ok
}

// Register creates a new user after checking the password policy, hashing
// the password with bcrypt.
func (s *CredentialStore) Register(username, password string) error {
	username = normalizeUsername(username)
	if username == "" {
		return &ledgererror.ValidationError{Field: "username", Value: "", Reason: "username cannot be empty"}
	}
	if s.Exists(username) {
		return &ledgererror.DuplicateError{Key: "username " + username}
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	s.creds[username] = string(hash)

	if err := s.save(); err != nil {
		delete(s.creds, username)
		return err
	}
	s.logger.Info("User registered", logging.F("user", username))
	return nil
}

// Authenticate verifies the password for username and returns the
// validated username scope.
func (s *CredentialStore) Authenticate(username, password string) (string, error) {
	username = normalizeUsername(username)
	hash, ok := s.creds[username]
	if !ok {
		return "", &ledgererror.NotFoundError{Selector: "username " + username}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", &ledgererror.ValidationError{Field: "password", Value: "", Reason: "invalid username or password"}
	}
	return username, nil
}

// ResetPassword replaces the password for an existing user after policy
// validation.
func (s *CredentialStore) ResetPassword(username, newPassword string) error {
	username = normalizeUsername(username)
	if !s.Exists(username) {
		return &ledgererror.NotFoundError{Selector: "username " + username}
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	s.creds[username] = string(hash)
	return s.save()
}

// ValidatePassword enforces the password policy: at least 8 characters
// with a digit, an uppercase and a lowercase letter.
func ValidatePassword(password string) error {
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	reason := ""
	switch {
	case len(password) < 8:
		reason = "password must be at least 8 characters long"
	case !hasDigit:
		reason = "password must contain at least one number"
	case !hasUpper:
		reason = "password must contain at least one uppercase letter"
	case !hasLower:
		reason = "password must contain at least one lowercase letter"
	}
	if reason != "" {
		return &ledgererror.ValidationError{Field: "password", Value: "", Reason: reason}
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
