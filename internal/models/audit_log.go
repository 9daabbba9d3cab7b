package models

import "gorm.io/datatypes"

// AuditSource tells who triggered an audited action.
type AuditSource string

const (
	AuditSourceAPI      AuditSource = "api"
	AuditSourcePipeline AuditSource = "pipeline"
)

// AuditLog records admin actions and every distribution run. Pipeline runs
// have no user.
type AuditLog struct {
	Base
	UserID       *string        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Source       AuditSource    `gorm:"size:16;not null;default:'api'" json:"source"`
	Action       string         `gorm:"not null;index" json:"action"`
	ResourceType string         `gorm:"not null;index:idx_audit_resource" json:"resource_type"`
	ResourceID   string         `gorm:"index:idx_audit_resource" json:"resource_id"`
	IPAddress    string         `json:"ip_address,omitempty"`
	Changes      datatypes.JSON `json:"changes,omitempty"`
}
