// Package auth gates the console behind a single admin credential. The
// session lives only in client storage; nothing is checked server-side.
package auth

import (
	"crypto/subtle"
	"sync"

	"go.uber.org/zap"
)

// Storage keys holding the session.
const (
	KeyAuth     = "admin_auth"
	KeyUsername = "admin_username"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// Storage is durable key/value client storage.
//
//go:generate mockgen -source=gate.go -destination=storage_mock.go -package=auth
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// State is either Anonymous or Authenticated.
type State interface {
	isState()
}

type Anonymous struct{}

type Authenticated struct {
	Username string
}

func (Anonymous) isState()     {}
func (Authenticated) isState() {}

type Gate struct {
	storage Storage
	logger  *zap.Logger

	mu    sync.RWMutex
	state State
}

// NewGate restores the session from storage. Only admin_auth == "true" with a
// non-empty username counts as signed in.
func NewGate(storage Storage, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gate{storage: storage, logger: logger, state: Anonymous{}}

	flag, _ := storage.Get(KeyAuth)
	username, _ := storage.Get(KeyUsername)

	if flag == "true" && username != "" {
		g.state = Authenticated{Username: username}
	}

	return g
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.state
}

// Username returns the signed-in admin, if any.
func (g *Gate) Username() (string, bool) {
	if a, ok := g.State().(Authenticated); ok {
		return a.Username, true
	}

	return "", false
}

// Login checks the credential pair. A mismatch writes nothing and leaves the
// state untouched.
func (g *Gate) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1

	if !userOK || !passOK {
		g.logger.Info("login rejected", zap.String("username", username))
		return false
	}

	if err := g.storage.Set(KeyAuth, "true"); err != nil {
		g.logger.Warn("persisting session flag", zap.Error(err))
	}

	if err := g.storage.Set(KeyUsername, username); err != nil {
		g.logger.Warn("persisting session username", zap.Error(err))
	}

	g.mu.Lock()
	g.state = Authenticated{Username: username}
	g.mu.Unlock()

	g.logger.Info("admin signed in", zap.String("username", username))

	return true
}

func (g *Gate) Logout() {
	if err := g.storage.Remove(KeyAuth); err != nil {
		g.logger.Warn("clearing session flag", zap.Error(err))
	}

	if err := g.storage.Remove(KeyUsername); err != nil {
		g.logger.Warn("clearing session username", zap.Error(err))
	}

	g.mu.Lock()
	g.state = Anonymous{}
	g.mu.Unlock()

	g.logger.Info("admin signed out")
}
