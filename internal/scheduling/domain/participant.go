package domain

import "github.com/google/uuid"

// Participant identifies someone who must attend a meeting. Availability is
// supplied per slot by an AvailabilityProbe, never stored on the participant.
type Participant struct {
	ID    uuid.UUID
	Name  string
	Email string
}
