// Package ward tracks admitted patients, their rooms and their triage state.
//
// A Registry owns four collections: the room table, a critical bucket, a
// stable FIFO and the admission-ordered record list. It is not safe for
// concurrent use; callers serialise access.
package ward

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Registry struct {
	rooms   *RoomTable
	queue   TriageQueue
	records []*Patient
}

func NewRegistry(totalRooms int) (*Registry, error) {
	rooms, err := NewRoomTable(totalRooms)
	if err != nil {
		return nil, err
	}
	return &Registry{rooms: rooms}, nil
}

// Admit places the patient in the lowest free room and queues it by
// condition. A full registry returns ErrNoRoomsAvailable and is left as is.
func (r *Registry) Admit(p Patient) (Patient, error) {
	if err := validateAdmission(&p); err != nil {
		return Patient{}, err
	}

	room := r.rooms.firstFree()
	if room == 0 {
		return Patient{}, ErrNoRoomsAvailable
	}

	rec := &Patient{
		AdmissionID:   uuid.New(),
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Condition:     p.Condition,
		AdmissionDate: p.AdmissionDate,
		Room:          room,
	}
	r.rooms.occupy(room, rec.AdmissionID)
	r.records = append(r.records, rec)
	r.queue.Enqueue(rec)
	return *rec, nil
}

func validateAdmission(p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Age < 0 {
		return fmt.Errorf("%w: age must not be negative, got %d", ErrInvalidInput, p.Age)
	}
	if !p.Condition.Valid() {
		return fmt.Errorf("%w: condition must be Critical or Stable, got %q", ErrInvalidInput, p.Condition)
	}
	return nil
}

// Discharge removes the first record with the given id, frees its room and
// drops it from the triage queue.
func (r *Registry) Discharge(id int) (Patient, error) {
	for i, rec := range r.records {
		if rec.ID != id {
			continue
		}
		if err := r.rooms.release(rec.Room); err != nil {
			return Patient{}, fmt.Errorf("discharge patient %d: %w", id, err)
		}
		r.queue.Remove(rec.AdmissionID)
		r.records = append(r.records[:i], r.records[i+1:]...)
		return *rec, nil
	}
	return Patient{}, ErrPatientNotFound
}

// Records returns the current records in admission order.
func (r *Registry) Records() []Patient {
	out := make([]Patient, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out
}

// TreatNextCritical downgrades the oldest critical patient to stable and
// moves it to the back of the stable FIFO.
func (r *Registry) TreatNextCritical() (Patient, error) {
	rec, ok := r.queue.PopCritical()
	if !ok {
		return Patient{}, ErrNoCriticalPatients
	}
	rec.Condition = ConditionStable
	r.queue.Enqueue(rec)
	return *rec, nil
}

func (r *Registry) Occupancy() (occupied, total int) {
	return r.rooms.Occupied(), r.rooms.Total()
}

func (r *Registry) Rooms() []Room { return r.rooms.Rooms() }

func (r *Registry) CriticalQueue() []Patient { return r.queue.Critical() }

func (r *Registry) StableQueue() []Patient { return r.queue.Stable() }

func (r *Registry) Census() Census {
	occupied, total := r.Occupancy()
	return Census{
		TotalRooms:    total,
		OccupiedRooms: occupied,
		FreeRooms:     total - occupied,
		Records:       len(r.records),
		Critical:      r.queue.CriticalLen(),
		Stable:        r.queue.StableLen(),
	}
}
