package domain

import "time"

// AuditFields holds standard attribution for domain entities. The actor ids
// come from the identity collaborator and are recorded, never authenticated.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // actor reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // actor reference
}
