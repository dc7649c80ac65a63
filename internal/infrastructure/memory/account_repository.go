package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

var _ repository.AccountRepository = (*accountRepo)(nil)

type accountRepo struct {
	lk    sync.Locker
	state func() *state
}

func (r *accountRepo) Create(_ context.Context, acc *entity.Account) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	if _, ok := st.accounts[acc.ID]; ok {
		return domain.ErrConflict
	}
	if findByEmail(st, acc.Email) != nil {
		return domain.ErrEmailAlreadyExists
	}
	st.accounts[acc.ID] = acc.Clone()
	st.accountOrder = append(st.accountOrder, acc.ID)
	return nil
}

func (r *accountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	return findByEmail(r.state(), email).Clone(), nil
}

// FindByEmailForUpdate la exclusión la da el mutex de la transacción.
func (r *accountRepo) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error) {
	return r.FindByEmail(ctx, email)
}

func (r *accountRepo) Update(_ context.Context, acc *entity.Account) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	cur, ok := r.state().accounts[acc.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	next := acc.Clone()
	next.Roles = cur.Roles
	r.state().accounts[acc.ID] = next
	return nil
}

func (r *accountRepo) SetRoles(_ context.Context, accountID string, roles []entity.Role) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	cur, ok := r.state().accounts[accountID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cur.Roles = append([]entity.Role(nil), roles...)
	return nil
}

func (r *accountRepo) Delete(_ context.Context, id string) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	delete(st.accounts, id)
	for i, v := range st.accountOrder {
		if v == id {
			st.accountOrder = append(st.accountOrder[:i:i], st.accountOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *accountRepo) Count(_ context.Context) (int, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	return len(r.state().accounts), nil
}

func (r *accountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	return findByEmail(r.state(), email) != nil, nil
}

func (r *accountRepo) List(_ context.Context) ([]*entity.Account, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	list := make([]*entity.Account, 0, len(st.accountOrder))
	for _, id := range st.accountOrder {
		list = append(list, st.accounts[id].Clone())
	}
	return list, nil
}

func findByEmail(st *state, email string) *entity.Account {
	email = normalize.Email(email)
	for _, a := range st.accounts {
		if normalize.Email(a.Email) == email {
			return a
		}
	}
	return nil
}
