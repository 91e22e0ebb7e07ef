package models

// Portfolio holds a worker's showcase images. Entries are appended through
// profile completion and moderated independently of the account itself.
type Portfolio struct {
	BaseModel
	UserID   string          `gorm:"type:uuid;not null;index" json:"user_id"`
	ImageURL string          `gorm:"type:text;not null" json:"image_url"`
	Status   PortfolioStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
