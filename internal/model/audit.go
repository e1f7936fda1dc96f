package model

import "time"

// AuditEntry records one mutating request issued through the console.
type AuditEntry struct {
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id"`
	ActorID   int       `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	ActorRole Role      `json:"actor_role"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
