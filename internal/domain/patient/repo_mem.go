package patient

import (
	"context"
	"sort"
)

// MemoryRepository holds the patient collection in memory. The collection is
// rebuilt from the flat file at the top of every session iteration, so the
// repository carries no cross-iteration state. Not safe for concurrent use;
// sessions are single-threaded by contract.
type MemoryRepository struct {
	patients map[int]Patient
}

// NewMemoryRepository seeds a repository from a decoded collection. A nil
// seed starts empty (first-run bootstrap).
func NewMemoryRepository(seed map[int]Patient) *MemoryRepository {
	patients := make(map[int]Patient, len(seed))
	for id, p := range seed {
		patients[id] = p
	}
	return &MemoryRepository{patients: patients}
}

func (r *MemoryRepository) Create(_ context.Context, p *Patient) error {
	if _, ok := r.patients[p.ID]; ok {
		return ErrDuplicateID
	}
	r.patients[p.ID] = *p
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int) (*Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Update(_ context.Context, p *Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return ErrNotFound
	}
	r.patients[p.ID] = *p
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.patients[id]; !ok {
		return ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Patient, error) {
	ids := make([]int, 0, len(r.patients))
	for id := range r.patients {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]*Patient, 0, len(ids))
	for _, id := range ids {
		p := r.patients[id]
		result = append(result, &p)
	}
	return result, nil
}

func (r *MemoryRepository) Snapshot(_ context.Context) (map[int]Patient, error) {
	out := make(map[int]Patient, len(r.patients))
	for id, p := range r.patients {
		out[id] = p
	}
	return out, nil
}
