package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/services/dto"
)

func workerRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:            "worker@test.com",
		FullName:         "Test Worker",
		Phone:            "+10000000001",
		Password:         "super_password123",
		ConfirmPassword:  "super_password123",
		Role:             models.UserRoleWorker,
		NationalIDNumber: "1234567890123456",
		TradeName:        "plumber",
	}
}

func TestRegister_Worker_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	user, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleWorker, user.Role)
	assert.Equal(t, "1234567890123456", user.NationalIDNumber)
	assert.Equal(t, []string{"plumber"}, user.Trades)
	// Linking the registry record does not verify the account by itself.
	assert.False(t, user.Verified)
	assert.Equal(t, models.VerificationPending, user.VerificationStatus)

	// Exactly one trade link was created.
	links, err := store.trades.ListLinkedTradeIDs(user.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestRegister_Worker_UnknownNationalID(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNationalIDNotRegistered))

	// No account is created when the registry lookup fails.
	assert.Empty(t, store.users.byID)
}

func TestRegister_Worker_MissingRoleFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	req := workerRegistration()
	req.NationalIDNumber = ""
	req.TradeName = "  "

	_, err := svc.Register(req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "national_id_number")
	assert.Contains(t, details, "trade_name")
}

func TestRegister_Company_ForcesPendingVerification(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	user, err := svc.Register(&dto.RegisterRequest{
		Email:              "company@test.com",
		FullName:           "Acme Construction",
		Phone:              "+10000000002",
		Password:           "super_password123",
		ConfirmPassword:    "super_password123",
		Role:               models.UserRoleCompany,
		CompanyName:        "Acme Construction LLC",
		CompanyLicense:     "LIC-001",
		RegistrationNumber: "REG-001",
	})
	require.NoError(t, err)

	assert.False(t, user.Verified)
	assert.Equal(t, models.VerificationPending, user.VerificationStatus)
	require.NotNil(t, user.CompanyName)
	assert.Equal(t, "Acme Construction LLC", *user.CompanyName)
}

func TestRegister_Company_MissingFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	_, err := svc.Register(&dto.RegisterRequest{
		Email:           "company@test.com",
		FullName:        "Acme",
		Phone:           "+10000000002",
		Password:        "super_password123",
		ConfirmPassword: "super_password123",
		Role:            models.UserRoleCompany,
		CompanyName:     "Acme",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "company_license")
	assert.Contains(t, details, "registration_number")
	assert.NotContains(t, details, "company_name")
}

func TestRegister_OwnerAndStudent_NoExtrasRequired(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	for i, role := range []models.UserRole{models.UserRoleOwner, models.UserRoleStudent} {
		user, err := svc.Register(&dto.RegisterRequest{
			Email:           roleEmail(role),
			FullName:        "Plain User",
			Phone:           phoneFor(i),
			Password:        "super_password123",
			ConfirmPassword: "super_password123",
			Role:            role,
			Location:        "Nairobi",
		})
		require.NoError(t, err)
		assert.Equal(t, role, user.Role)
		require.NotNil(t, user.Location)
		assert.Equal(t, "Nairobi", *user.Location)
	}
}

func roleEmail(role models.UserRole) string {
	return string(role) + "@test.com"
}

func phoneFor(i int) string {
	return fmt.Sprintf("+1000000010%d", i)
}

func TestRegister_UnknownRole(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	req := workerRegistration()
	req.Role = "wizard"

	_, err := svc.Register(req)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidUserRole))
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.authService()

	req := workerRegistration()
	req.Password = "short"
	req.ConfirmPassword = "short"

	_, err := svc.Register(req)
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	dup := workerRegistration()
	dup.Phone = "+19999999999"
	_, err = svc.Register(dup)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestRegister_NationalIDRace(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	// Same registry record, fresh email and phone: the unique index on the
	// national-id link is what rejects it.
	dup := workerRegistration()
	dup.Email = "other@test.com"
	dup.Phone = "+19999999999"
	_, err = svc.Register(dup)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestLogin_And_Refresh(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "worker@test.com", Password: "super_password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Refresh rotates the token: the old one stops working.
	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	_, err = svc.RefreshToken(resp.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "worker@test.com", Password: "wrong-password"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestPasswordReset_Flow(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset("worker@test.com"))
	assert.Equal(t, []string{"worker@test.com"}, store.email.sent)

	user, err := store.users.FindByEmail("worker@test.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.ResetToken)

	require.NoError(t, svc.ResetPassword(user.ResetToken, "brand_new_password"))

	_, err = svc.Login(&dto.LoginRequest{Email: "worker@test.com", Password: "brand_new_password"})
	assert.NoError(t, err)

	// The token is single-use.
	err = svc.ResetPassword(user.ResetToken, "another_password1")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestPasswordReset_EmailFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.national.seed("1234567890123456", "Test Worker")
	store.email.fail = true
	svc := store.authService()

	_, err := svc.Register(workerRegistration())
	require.NoError(t, err)

	err = svc.RequestPasswordReset("worker@test.com")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeEmailDelivery, appErr.Code)
}
