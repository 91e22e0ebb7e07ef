package services

import (
	"fmt"
	"strings"
	"time"

	"buildlink/internal/apperrors"
	"buildlink/internal/auth"
	"buildlink/internal/email"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
	"buildlink/internal/services/dto"
)

// rolePolicy declares which role-specific fields a registration must and may
// carry. Keeping the rule set in a table means adding a role is a data
// change, not another branch.
type rolePolicy struct {
	required []string
	optional []string
}

var registrationPolicies = map[models.UserRole]rolePolicy{
	models.UserRoleWorker:  {required: []string{"national_id_number", "trade_name"}},
	models.UserRoleCompany: {required: []string{"company_name", "company_license", "registration_number"}},
	models.UserRoleOwner:   {optional: []string{"location", "gender"}},
	models.UserRoleStudent: {optional: []string{"location", "gender"}},
}

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	RequestPasswordReset(emailAddr string) error
	ResetPassword(token, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo       repositories.UserRepository
	nationalIDRepo repositories.NationalIDRepository
	tradeRepo      repositories.TradeRepository
	refreshRepo    repositories.RefreshTokenRepository
	emailProvider  email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	nationalIDRepo repositories.NationalIDRepository,
	tradeRepo repositories.TradeRepository,
	refreshRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:       userRepo,
		nationalIDRepo: nationalIDRepo,
		tradeRepo:      tradeRepo,
		refreshRepo:    refreshRepo,
		emailProvider:  emailProvider,
	}
}

// Register validates the role-conditioned field set, cross-checks the
// identity registry for workers, and creates the account (plus its trade
// link for workers) atomically.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	policy, ok := registrationPolicies[req.Role]
	if !ok {
		return nil, apperrors.ErrInvalidUserRole
	}

	missing := map[string]string{}
	for _, field := range policy.required {
		if strings.TrimSpace(req.Extra(field)) == "" {
			missing[field] = "This field is required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.ValidationError(missing)
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByPhone(req.Phone); err == nil {
		return nil, apperrors.ErrPhoneAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:              req.Email,
		Phone:              req.Phone,
		FullName:           req.FullName,
		Role:               req.Role,
		PasswordHash:       hashedPassword,
		VerificationStatus: models.VerificationPending,
	}

	setOptional := func(field string, dst **string) {
		if v := strings.TrimSpace(req.Extra(field)); v != "" {
			*dst = &v
		}
	}
	setOptional("location", &user.Location)
	setOptional("gender", &user.Gender)

	var tradeID string
	var tradeNames []string

	switch req.Role {
	case models.UserRoleWorker:
		record, err := s.nationalIDRepo.FindByNumber(req.NationalIDNumber)
		if err != nil {
			if apperrors.Is(err, repositories.ErrNationalIDNotFound) {
				return nil, apperrors.ErrNationalIDNotRegistered
			}
			return nil, apperrors.InternalError(err)
		}
		user.NationalIDID = &record.ID
		user.NationalID = record
		// Linking the registry record is not verification; that happens in a
		// separate explicit step.

		name := strings.TrimSpace(req.TradeName)
		trade, err := s.tradeRepo.GetOrCreateByName(name)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		tradeID = trade.ID
		tradeNames = []string{trade.Name}

	case models.UserRoleCompany:
		companyName := req.CompanyName
		companyLicense := req.CompanyLicense
		registrationNumber := req.RegistrationNumber
		user.CompanyName = &companyName
		user.CompanyLicense = &companyLicense
		user.RegistrationNumber = &registrationNumber
		// Companies always start out pending review, whatever the input said.
		user.VerificationStatus = models.VerificationPending
	}

	if err := s.userRepo.CreateWithTradeLink(user, tradeID); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a uniqueness race on email, phone or national-id link.
			return nil, apperrors.NewConflictError("Account conflicts with an existing registration")
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user, tradeNames), nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.refreshRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		s.refreshRepo.DeleteByToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the presented token dies with this exchange.
	if err := s.refreshRepo.DeleteByToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Logout blacklists the refresh token by removing it from the store.
func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.refreshRepo.DeleteByToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	resetToken := auth.GenerateRandomToken()
	expires := time.Now().Add(resetTokenTTL)
	user.ResetToken = resetToken
	user.ResetTokenExp = &expires

	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Use the token below to reset your BuildLink password. It expires in one hour.</p><p><b>%s</b></p>",
		user.FullName, resetToken,
	)
	if err := s.emailProvider.Send(user.Email, "Reset your BuildLink password", body); err != nil {
		return apperrors.EmailDeliveryError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if user.ResetToken == "" || user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashed
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// Invalidate existing sessions after a password change.
	if err := s.refreshRepo.DeleteForUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.GenerateRandomToken(),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	if err := s.refreshRepo.Create(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	trades, err := s.tradeRepo.ListTradeNamesForUser(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.NewUserResponse(user, trades),
	}, nil
}
