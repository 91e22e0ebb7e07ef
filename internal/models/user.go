package models

import "time"

// User is the account record shared by all roles. Role-specific columns are
// nullable; which of them are required at registration time is decided by the
// role policy table in the auth service, not here.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string   `gorm:"uniqueIndex;not null" json:"phone"`
	FullName     string   `gorm:"not null" json:"full_name"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	PasswordHash string   `gorm:"not null" json:"-"`

	Location *string `json:"location,omitempty"`
	Gender   *string `json:"gender,omitempty"`

	// Company-specific fields
	CompanyName        *string `json:"company_name,omitempty"`
	CompanyLicense     *string `json:"company_license,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`

	// Verification. Only meaningful for worker and company roles.
	Verified           bool               `gorm:"default:false" json:"verified"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending'" json:"verification_status"`

	AvgRating *float64 `json:"avg_rating,omitempty"`

	// At most one account may hold a given national ID record; the unique
	// index is what makes concurrent double-links lose at the store.
	NationalIDID *string     `gorm:"type:uuid;uniqueIndex" json:"-"`
	NationalID   *NationalID `gorm:"foreignKey:NationalIDID" json:"national_id,omitempty"`

	ResetToken    string     `json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	// Relations
	WorkerTrades  []WorkerTrade  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Portfolio     []Portfolio    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsWorkerVerified() bool {
	return u.Role == UserRoleWorker && u.Verified
}

func (u *User) IsCompanyVerified() bool {
	return u.Role == UserRoleCompany && u.VerificationStatus == VerificationApproved
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
