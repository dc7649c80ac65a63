package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*roleRepo)(nil)

type roleRepo struct {
	lk    sync.Locker
	state func() *state
}

func (r *roleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	role, ok := r.state().roles[name]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *roleRepo) Create(_ context.Context, role *entity.Role) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	if _, ok := st.roles[role.Name]; ok {
		return domain.ErrConflict
	}
	st.roles[role.Name] = *role
	st.roleOrder = append(st.roleOrder, role.Name)
	return nil
}

func (r *roleRepo) Count(_ context.Context) (int, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	return len(r.state().roles), nil
}

func (r *roleRepo) List(_ context.Context) ([]entity.Role, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	list := make([]entity.Role, 0, len(st.roleOrder))
	for _, name := range st.roleOrder {
		list = append(list, st.roles[name])
	}
	return list, nil
}
