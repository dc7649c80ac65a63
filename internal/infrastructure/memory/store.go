// Package memory implementa los puertos de persistencia en proceso
// (STORE_DRIVER=memory y tests). Las transacciones se serializan con un mutex:
// Run trabaja sobre una copia del estado y la publica sólo si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
)

var _ security.TxRunner = (*Store)(nil)

type state struct {
	accounts     map[string]*entity.Account // por ID
	accountOrder []string
	roles        map[string]entity.Role // por nombre
	roleOrder    []string
	events       []entity.AuditEvent
	lastEventID  int64
}

func newState() *state {
	return &state{
		accounts: make(map[string]*entity.Account),
		roles:    make(map[string]entity.Role),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[string]*entity.Account, len(s.accounts)),
		accountOrder: append([]string(nil), s.accountOrder...),
		roles:        make(map[string]entity.Role, len(s.roles)),
		roleOrder:    append([]string(nil), s.roleOrder...),
		events:       append([]entity.AuditEvent(nil), s.events...),
		lastEventID:  s.lastEventID,
	}
	for id, a := range s.accounts {
		c.accounts[id] = a.Clone()
	}
	for name, r := range s.roles {
		c.roles[name] = r
	}
	return c
}

// Store almacén en memoria. Cada Run copia el estado completo (eventos incluidos) bajo
// un único mutex: O(eventos) por escritura y sin concurrencia. Sólo para desarrollo y tests.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Stores repositorios fuera de transacción; cada operación toma el mutex.
func (s *Store) Stores() repository.Stores {
	current := func() *state { return s.st }
	return repository.Stores{
		Accounts: &accountRepo{lk: &s.mu, state: current},
		Roles:    &roleRepo{lk: &s.mu, state: current},
		Events:   &eventRepo{lk: &s.mu, state: current},
	}
}

// Run ejecuta fn sobre una copia del estado y la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.st.clone()
	current := func() *state { return snap }
	var lk noopLocker
	err := fn(repository.Stores{
		Accounts: &accountRepo{lk: lk, state: current},
		Roles:    &roleRepo{lk: lk, state: current},
		Events:   &eventRepo{lk: lk, state: current},
	})
	if err != nil {
		return err
	}
	s.st = snap
	return nil
}

// El mutex ya está tomado por Run.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
