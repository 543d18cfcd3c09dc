package ticket

import (
	"time"
)

// Ticket is a local snapshot of an ITSM ticket received via webhook.
// The primary key is the ticket's id in the external ITSM.
type Ticket struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	RawPayload  string `gorm:"type:text" json:"-"`
	DateCreated *time.Time `json:"date_creation,omitempty"`

	RequesterID   *int   `json:"user_recipient_id,omitempty"`
	RequesterName string `gorm:"type:varchar(255)" json:"user_recipient_name"`
	Location      string `gorm:"type:varchar(255)" json:"location"`

	CategoryID               *uint  `gorm:"index" json:"category_id,omitempty"`
	CategoryName             string `gorm:"type:varchar(1024)" json:"category_name"`
	ClassificationMethod     string `gorm:"type:varchar(50)" json:"classification_method"`
	ClassificationConfidence string `gorm:"type:varchar(50)" json:"classification_confidence"`

	EntityID   *int   `json:"entity_id,omitempty"`
	EntityName string `gorm:"type:varchar(255)" json:"entity_name"`

	TeamAssignedID   *int   `json:"team_assigned_id,omitempty"`
	TeamAssignedName string `gorm:"type:varchar(255)" json:"team_assigned_name"`

	// Status mirrored from (or pushed back to) the external ITSM
	ITSMStatus string `gorm:"type:varchar(50)" json:"itsm_status"`

	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastITSMUpdate *time.Time `json:"last_itsm_update,omitempty"`
}

// IsClassified checks if the ticket already carries a classification result
func (t *Ticket) IsClassified() bool {
	return t.ClassificationMethod != ""
}
