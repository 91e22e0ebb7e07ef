package dto

// CompleteProfileRequest is the partial update applied after registration.
// Nil fields are left untouched.
type CompleteProfileRequest struct {
	Location *string `json:"location,omitempty"`
	Gender   *string `json:"gender,omitempty"`

	CompanyName        *string `json:"company_name,omitempty"`
	CompanyLicense     *string `json:"company_license,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`

	// Looks up the identity registry and links the record to the account.
	NationalIDNumber *string `json:"national_id_number,omitempty"`

	// Each URL becomes a pending portfolio entry.
	PortfolioImages []string `json:"portfolio_images,omitempty"`

	// Privileged direct overwrite of the verification status. The handler
	// rejects this field for non-admin callers.
	IDVerificationStatus *string `json:"id_verification_status,omitempty"`
}

// UpdateWorkerProfileRequest updates the worker's own basic fields and,
// when Trades is non-nil, synchronizes the trade set to exactly that list.
type UpdateWorkerProfileRequest struct {
	FullName *string   `json:"full_name,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Location *string   `json:"location,omitempty"`
	Trades   *[]string `json:"trades,omitempty"`
}

type VerifyCompanyRequest struct {
	Action string `json:"action" validate:"required"`
}
