// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth implements the static credential gate in front of the
// client. Credentials live in a directory of plain-text files (filename
// is the key, trimmed contents the value); a successful login writes a
// session file that later commands check. This is a gate, not account
// management: there is one credential pair and no server round trip.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/researchlens/pkg/types"
)

// Credential file names inside the credentials directory.
const (
	usernameFile = "username"
	passwordFile = "password"
)

// Compiled-in defaults used when the credentials directory has no
// username/password files.
const (
	defaultUsername = "researcher"
	defaultPassword = "lens"
)

// ErrInvalidCredentials reports a failed login attempt.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// ErrNoSession reports that no valid session exists.
var ErrNoSession = errors.New("auth: not logged in")

// Session records a successful login.
type Session struct {
	// User is the authenticated username.
	User string `yaml:"user"`

	// IssuedAt is when the session was created.
	IssuedAt time.Time `yaml:"issued_at"`
}

// Gate verifies static credentials and manages the session file.
type Gate struct {
	username    string
	password    string
	sessionPath string
}

// NewGate builds a gate from configuration. Missing credential files are
// not errors; the compiled-in defaults apply.
func NewGate(cfg types.AuthConfig) (*Gate, error) {
	if cfg.SessionPath == "" {
		return nil, fmt.Errorf("auth: session path is empty")
	}

	g := &Gate{
		username:    defaultUsername,
		password:    defaultPassword,
		sessionPath: cfg.SessionPath,
	}

	if cfg.CredentialsDir != "" {
		if v, err := readCredential(cfg.CredentialsDir, usernameFile); err != nil {
			return nil, err
		} else if v != "" {
			g.username = v
		}
		if v, err := readCredential(cfg.CredentialsDir, passwordFile); err != nil {
			return nil, err
		} else if v != "" {
			g.password = v
		}
	}
	return g, nil
}

// readCredential returns the trimmed contents of a credential file, or ""
// when the file or directory does not exist.
func readCredential(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading credential %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Login verifies the credentials and persists a session on success.
func (g *Gate) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	session := &Session{User: username, IssuedAt: time.Now().UTC()}
	data, err := yaml.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(g.sessionPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing session: %w", err)
	}
	return session, nil
}

// Logout removes the session file. A missing session is not an error.
func (g *Gate) Logout() error {
	if err := os.Remove(g.sessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Current returns the active session, or ErrNoSession.
func (g *Gate) Current() (*Session, error) {
	data, err := os.ReadFile(g.sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if session.User == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}
