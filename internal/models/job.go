package models

type Job struct {
	BaseModel
	PostedByID  string  `gorm:"type:uuid;not null;index" json:"posted_by_id"`
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"size:100" json:"location"`
	Type        JobType `gorm:"type:varchar(20);not null" json:"type"`

	TradeID *string  `gorm:"type:uuid" json:"trade_id,omitempty"`
	Budget  *float64 `json:"budget,omitempty"`

	Status JobStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	// Relations
	PostedBy *User  `gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE" json:"posted_by,omitempty"`
	Trade    *Trade `gorm:"foreignKey:TradeID;constraint:OnDelete:SET NULL" json:"trade,omitempty"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
