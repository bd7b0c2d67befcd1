package ward

import (
	"fmt"

	"github.com/google/uuid"
)

// RoomTable is a fixed-capacity occupancy table sized once at startup.
type RoomTable struct {
	rooms    []Room
	occupied int
}

func NewRoomTable(total int) (*RoomTable, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: total rooms must not be negative, got %d", ErrInvalidInput, total)
	}
	rooms := make([]Room, total)
	for i := range rooms {
		rooms[i].Number = i + 1
	}
	return &RoomTable{rooms: rooms}, nil
}

// firstFree returns the lowest vacant room number, or 0 when full.
func (t *RoomTable) firstFree() int {
	for _, r := range t.rooms {
		if !r.Occupied {
			return r.Number
		}
	}
	return 0
}

func (t *RoomTable) occupy(number int, admissionID uuid.UUID) {
	r := &t.rooms[number-1]
	r.Occupied = true
	r.AdmissionID = admissionID
	t.occupied++
}

func (t *RoomTable) release(number int) error {
	if number < 1 || number > len(t.rooms) {
		return fmt.Errorf("room %d out of range 1..%d", number, len(t.rooms))
	}
	r := &t.rooms[number-1]
	if !r.Occupied {
		return fmt.Errorf("room %d is already vacant", number)
	}
	r.Occupied = false
	r.AdmissionID = uuid.Nil
	t.occupied--
	return nil
}

func (t *RoomTable) Total() int { return len(t.rooms) }

func (t *RoomTable) Occupied() int { return t.occupied }

// Rooms returns a copy of the table.
func (t *RoomTable) Rooms() []Room {
	out := make([]Room, len(t.rooms))
	copy(out, t.rooms)
	return out
}
