package employee

import (
	"time"
)

// Employee is a staff member who can check in. Deactivation is the only deletion path.
type Employee struct {
	ID        string
	Name      string
	PINHash   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
