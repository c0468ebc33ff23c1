package doctor

import (
	"context"
	"sort"
)

// MemoryRepository holds the doctor collection in memory, rebuilt from the
// flat file at the top of every session iteration. Not safe for concurrent
// use; sessions are single-threaded by contract.
type MemoryRepository struct {
	doctors map[int]Record
}

// NewMemoryRepository seeds a repository from a decoded collection. A nil
// seed starts empty (first-run bootstrap).
func NewMemoryRepository(seed map[int]Record) *MemoryRepository {
	doctors := make(map[int]Record, len(seed))
	for id, rec := range seed {
		doctors[id] = cloneRecord(rec)
	}
	return &MemoryRepository{doctors: doctors}
}

func (r *MemoryRepository) Create(_ context.Context, rec *Record) error {
	if _, ok := r.doctors[rec.ID]; ok {
		return ErrDuplicateID
	}
	r.doctors[rec.ID] = cloneRecord(*rec)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int) (*Record, error) {
	rec, ok := r.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRecord(rec)
	return &out, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec *Record) error {
	if _, ok := r.doctors[rec.ID]; !ok {
		return ErrNotFound
	}
	r.doctors[rec.ID] = cloneRecord(*rec)
	return nil
}

// Delete removes the doctor and, with it, the whole appointment sequence the
// record owns.
func (r *MemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.doctors[id]; !ok {
		return ErrNotFound
	}
	delete(r.doctors, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	ids := make([]int, 0, len(r.doctors))
	for id := range r.doctors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec := cloneRecord(r.doctors[id])
		result = append(result, &rec)
	}
	return result, nil
}

func (r *MemoryRepository) Snapshot(_ context.Context) (map[int]Record, error) {
	out := make(map[int]Record, len(r.doctors))
	for id, rec := range r.doctors {
		out[id] = cloneRecord(rec)
	}
	return out, nil
}

// cloneRecord copies the appointment slice so callers cannot alias the
// stored sequence.
func cloneRecord(rec Record) Record {
	if rec.Appointments != nil {
		appts := make([]Appointment, len(rec.Appointments))
		copy(appts, rec.Appointments)
		rec.Appointments = appts
	}
	return rec
}
