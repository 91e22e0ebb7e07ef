package models

import "gorm.io/datatypes"

// Notification records a message delivered (or attempted) to a user, e.g.
// "your application was accepted". Data carries structured context such as
// the job and application ids.
type Notification struct {
	BaseModel
	UserID  string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Message string             `gorm:"type:text;not null" json:"message"`
	Status  NotificationStatus `gorm:"type:varchar(20);default:'sent'" json:"status"`
	Data    datatypes.JSON     `gorm:"type:jsonb" json:"data,omitempty"`
}
