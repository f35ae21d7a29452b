package domain

import "time"

// AuditLog records a handled request or a significant action.
type AuditLog struct {
	RequestID  string    `json:"request_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	Details    string    `json:"details"` // JSON blob
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

// Audit action constants.
const (
	AuditActionRequest  = "http_request"
	AuditActionLogin    = "login"
	AuditActionGenerate = "generate"
	AuditActionPublish  = "publish"
)
