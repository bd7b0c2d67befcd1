package ward

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Condition is the triage state of an admitted patient.
type Condition string

const (
	ConditionCritical Condition = "Critical"
	ConditionStable   Condition = "Stable"
)

// ParseCondition accepts "Critical" or "Stable" in any letter case.
func ParseCondition(s string) (Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return ConditionCritical, nil
	case "stable":
		return ConditionStable, nil
	default:
		return "", fmt.Errorf("%w: condition must be Critical or Stable, got %q", ErrInvalidInput, s)
	}
}

func (c Condition) IsCritical() bool {
	return c == ConditionCritical
}

func (c Condition) Valid() bool {
	return c == ConditionCritical || c == ConditionStable
}

// Patient is a current patient record. ID is supplied by the caller and is
// not required to be unique; AdmissionID identifies one admission.
type Patient struct {
	AdmissionID   uuid.UUID `json:"admission_id"`
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Condition     Condition `json:"condition"`
	AdmissionDate string    `json:"admission_date"`
	Room          int       `json:"room"`
}

// Room is one slot of the fixed room table. Number is 1-based.
type Room struct {
	Number      int       `json:"number"`
	Occupied    bool      `json:"occupied"`
	AdmissionID uuid.UUID `json:"admission_id,omitempty"`
}

// Census summarises registry state.
type Census struct {
	TotalRooms    int `json:"total_rooms"`
	OccupiedRooms int `json:"occupied_rooms"`
	FreeRooms     int `json:"free_rooms"`
	Records       int `json:"records"`
	Critical      int `json:"critical"`
	Stable        int `json:"stable"`
}
