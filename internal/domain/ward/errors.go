package ward

import "errors"

var (
	ErrNoRoomsAvailable   = errors.New("no rooms available")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNoCriticalPatients = errors.New("no critical patients to treat")
	ErrInvalidInput       = errors.New("invalid input")
)
