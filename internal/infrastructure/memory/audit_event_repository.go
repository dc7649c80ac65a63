package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
)

var _ repository.AuditEventRepository = (*eventRepo)(nil)

type eventRepo struct {
	lk    sync.Locker
	state func() *state
}

func (r *eventRepo) Append(_ context.Context, ev *entity.AuditEvent) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	st := r.state()
	st.lastEventID++
	ev.ID = st.lastEventID
	if ev.Date.IsZero() {
		ev.Date = time.Now().UTC()
	}
	st.events = append(st.events, *ev)
	return nil
}

func (r *eventRepo) ListAll(_ context.Context) ([]entity.AuditEvent, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	return append([]entity.AuditEvent(nil), r.state().events...), nil
}
