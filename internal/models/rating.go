package models

// Rating is left by one party of a finished job about the other. One rating
// per (job, rater, rated) triple.
type Rating struct {
	BaseModel
	JobID       string  `gorm:"type:uuid;not null;uniqueIndex:idx_job_rater_rated" json:"job_id"`
	RaterID     string  `gorm:"type:uuid;not null;uniqueIndex:idx_job_rater_rated" json:"rater_id"`
	RatedUserID string  `gorm:"type:uuid;not null;uniqueIndex:idx_job_rater_rated;index" json:"rated_user_id"`
	Rating      int     `gorm:"not null" json:"rating"`
	Comment     *string `gorm:"type:text" json:"comment,omitempty"`

	Job       *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	Rater     *User `gorm:"foreignKey:RaterID;constraint:OnDelete:CASCADE" json:"rater,omitempty"`
	RatedUser *User `gorm:"foreignKey:RatedUserID;constraint:OnDelete:CASCADE" json:"rated_user,omitempty"`
}
