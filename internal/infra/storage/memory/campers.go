package memory

import (
	"context"
	"sync"

	domaincamper "camperhub/internal/domain/camper"
	"camperhub/internal/domain/shared/events"
)

// CamperRepository is an in-memory implementation for tests and local runs.
type CamperRepository struct {
	mu    sync.RWMutex
	items map[domaincamper.CamperID]*domaincamper.Camper
}

func NewCamperRepository() *CamperRepository {
	return &CamperRepository{
		items: make(map[domaincamper.CamperID]*domaincamper.Camper),
	}
}

func (r *CamperRepository) ByID(ctx context.Context, id domaincamper.CamperID) (*domaincamper.Camper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domaincamper.ErrNotFound
	}
	return cloneCamper(c), nil
}

func (r *CamperRepository) Save(ctx context.Context, c *domaincamper.Camper) error {
	if c == nil || c.ID == "" {
		return domaincamper.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = cloneCamper(c)
	return nil
}

func (r *CamperRepository) CountByOwner(ctx context.Context, owner domaincamper.OwnerID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, c := range r.items {
		if c.Owner == owner {
			n++
		}
	}
	return n, nil
}

// All returns every stored camper. Used by the in-memory stats source.
func (r *CamperRepository) All(ctx context.Context) []*domaincamper.Camper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domaincamper.Camper, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, cloneCamper(c))
	}
	return result
}

func cloneCamper(c *domaincamper.Camper) *domaincamper.Camper {
	if c == nil {
		return nil
	}
	copyCamper := *c
	copyCamper.RateWindows = append([]domaincamper.RateWindow(nil), c.RateWindows...)
	copyCamper.Extras = append([]domaincamper.Extra(nil), c.Extras...)
	copyCamper.Photos = append([]string(nil), c.Photos...)
	copyCamper.EventRecorder = events.EventRecorder{}
	return &copyCamper
}
