package dto

import (
	"time"

	"buildlink/internal/models"
)

// RegisterRequest carries the common signup fields plus the role-specific
// extras. Which extras are required is decided by the role policy table in
// the auth service, so only the common fields carry binding tags here.
type RegisterRequest struct {
	Email           string          `json:"email" validate:"required,email"`
	FullName        string          `json:"full_name" validate:"required"`
	Phone           string          `json:"phone" validate:"required"`
	Password        string          `json:"password" validate:"required"`
	ConfirmPassword string          `json:"confirm_password" validate:"required"`
	Role            models.UserRole `json:"role" validate:"required"`

	// Worker extras
	NationalIDNumber string `json:"national_id_number,omitempty"`
	TradeName        string `json:"trade_name,omitempty"`

	// Company extras
	CompanyName        string `json:"company_name,omitempty"`
	CompanyLicense     string `json:"company_license,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`

	// Optional for owner/student
	Location string `json:"location,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Extra returns the value of a role-specific field by its wire name, so the
// role policy table can be checked generically.
func (r *RegisterRequest) Extra(field string) string {
	switch field {
	case "national_id_number":
		return r.NationalIDNumber
	case "trade_name":
		return r.TradeName
	case "company_name":
		return r.CompanyName
	case "company_license":
		return r.CompanyLicense
	case "registration_number":
		return r.RegistrationNumber
	case "location":
		return r.Location
	case "gender":
		return r.Gender
	default:
		return ""
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID                 string                    `json:"id"`
	Email              string                    `json:"email"`
	Phone              string                    `json:"phone"`
	FullName           string                    `json:"full_name"`
	Role               models.UserRole           `json:"role"`
	Verified           bool                      `json:"verified"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	Location           *string                   `json:"location,omitempty"`
	Gender             *string                   `json:"gender,omitempty"`
	CompanyName        *string                   `json:"company_name,omitempty"`
	CompanyLicense     *string                   `json:"company_license,omitempty"`
	RegistrationNumber *string                   `json:"registration_number,omitempty"`
	AvgRating          *float64                  `json:"avg_rating,omitempty"`
	NationalIDNumber   string                    `json:"national_id_number,omitempty"`
	Trades             []string                  `json:"trades,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// NewUserResponse projects a model into the public shape.
func NewUserResponse(u *models.User, trades []string) *UserResponse {
	resp := &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Phone:              u.Phone,
		FullName:           u.FullName,
		Role:               u.Role,
		Verified:           u.Verified,
		VerificationStatus: u.VerificationStatus,
		Location:           u.Location,
		Gender:             u.Gender,
		CompanyName:        u.CompanyName,
		CompanyLicense:     u.CompanyLicense,
		RegistrationNumber: u.RegistrationNumber,
		AvgRating:          u.AvgRating,
		Trades:             trades,
		CreatedAt:          u.CreatedAt,
	}
	if u.NationalID != nil {
		resp.NationalIDNumber = u.NationalID.IDNumber
	}
	return resp
}
