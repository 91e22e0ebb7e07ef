package services

import (
	"strings"

	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
	"buildlink/internal/services/dto"
)

type ProfileService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateWorkerProfile(userID string, req *dto.UpdateWorkerProfileRequest) (*dto.UserResponse, error)
	CompleteProfile(userID string, req *dto.CompleteProfileRequest) (*dto.UserResponse, error)
	SyncWorkerTrades(user *models.User, desiredNames []string) error
	VerifyCompany(companyID string, action string) (*dto.UserResponse, error)
	ListPortfolio(userID string) ([]models.Portfolio, error)
}

type ProfileServiceImpl struct {
	userRepo       repositories.UserRepository
	nationalIDRepo repositories.NationalIDRepository
	tradeRepo      repositories.TradeRepository
	portfolioRepo  repositories.PortfolioRepository
}

func NewProfileService(
	userRepo repositories.UserRepository,
	nationalIDRepo repositories.NationalIDRepository,
	tradeRepo repositories.TradeRepository,
	portfolioRepo repositories.PortfolioRepository,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:       userRepo,
		nationalIDRepo: nationalIDRepo,
		tradeRepo:      tradeRepo,
		portfolioRepo:  portfolioRepo,
	}
}

func (s *ProfileServiceImpl) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(user)
}

func (s *ProfileServiceImpl) UpdateWorkerProfile(userID string, req *dto.UpdateWorkerProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = req.Location
	}

	if err := s.userRepo.Update(user); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrPhoneAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Trades != nil {
		if err := s.SyncWorkerTrades(user, *req.Trades); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(user)
}

// CompleteProfile applies the post-registration patch: contact and company
// fields, identity linking, portfolio images and the privileged verification
// override.
func (s *ProfileServiceImpl) CompleteProfile(userID string, req *dto.CompleteProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.CompanyName != nil {
		user.CompanyName = req.CompanyName
	}
	if req.CompanyLicense != nil {
		user.CompanyLicense = req.CompanyLicense
	}
	if req.RegistrationNumber != nil {
		user.RegistrationNumber = req.RegistrationNumber
	}

	if req.NationalIDNumber != nil {
		record, err := s.nationalIDRepo.FindByNumber(*req.NationalIDNumber)
		if err != nil {
			if apperrors.Is(err, repositories.ErrNationalIDNotFound) {
				return nil, apperrors.ErrNationalIDNotRegistered
			}
			return nil, apperrors.InternalError(err)
		}
		user.NationalIDID = &record.ID
		user.NationalID = record
		// Workers whose review never concluded become verified on linking;
		// the company path stays with the explicit admin action.
		if user.Role == models.UserRoleWorker && user.VerificationStatus == models.VerificationPending {
			user.Verified = true
		}
	}

	if req.IDVerificationStatus != nil {
		status := models.VerificationStatus(*req.IDVerificationStatus)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("id_verification_status must be one of: pending, approved, rejected")
		}
		user.VerificationStatus = status
	}

	var entries []models.Portfolio
	for _, url := range req.PortfolioImages {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		entries = append(entries, models.Portfolio{
			UserID:   user.ID,
			ImageURL: url,
			Status:   models.PortfolioStatusPending,
		})
	}

	if err := s.userRepo.UpdateWithPortfolio(user, entries); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrNationalIDAlreadyLinked
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildResponse(user)
}

// SyncWorkerTrades reconciles the worker's trade links to exactly the
// desired set: resolve each name, diff against current links, delete the
// obsolete links and insert the missing ones. Calling it again with the same
// input is a no-op.
func (s *ProfileServiceImpl) SyncWorkerTrades(user *models.User, desiredNames []string) error {
	names := NormalizeTradeNames(desiredNames)

	if user.Role != models.UserRoleWorker {
		// A non-worker clearing an (empty) trade set is a no-op, not an error.
		if len(names) == 0 {
			return nil
		}
		return apperrors.ErrTradesForWorkersOnly
	}

	desired := make([]string, 0, len(names))
	for _, name := range names {
		trade, err := s.tradeRepo.GetOrCreateByName(name)
		if err != nil {
			return apperrors.InternalError(err)
		}
		desired = append(desired, trade.ID)
	}

	current, err := s.tradeRepo.ListLinkedTradeIDs(user.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	toRemove, toAdd := DiffTradeLinks(current, desired)
	if err := s.tradeRepo.ApplyLinkDiff(user.ID, toRemove, toAdd); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			// Concurrent sync already inserted the link; the end state is the
			// one we wanted.
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyCompany is the admin action settling a company's verification
// review. It is authoritative for both the flag and the status.
func (s *ProfileServiceImpl) VerifyCompany(companyID string, action string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotACompany
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleCompany {
		return nil, apperrors.ErrNotACompany
	}

	switch action {
	case "approve":
		user.Verified = true
		user.VerificationStatus = models.VerificationApproved
	case "reject":
		user.Verified = false
		user.VerificationStatus = models.VerificationRejected
	default:
		return nil, apperrors.ErrInvalidVerifyAction
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(user)
}

func (s *ProfileServiceImpl) ListPortfolio(userID string) ([]models.Portfolio, error) {
	entries, err := s.portfolioRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

func (s *ProfileServiceImpl) buildResponse(user *models.User) (*dto.UserResponse, error) {
	var trades []string
	if user.Role == models.UserRoleWorker {
		var err error
		trades, err = s.tradeRepo.ListTradeNamesForUser(user.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return dto.NewUserResponse(user, trades), nil
}

// NormalizeTradeNames trims, drops empties and de-duplicates while keeping
// first-seen order.
func NormalizeTradeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// DiffTradeLinks computes the link changes that turn current into desired:
// toRemove = current − desired, toAdd = desired − current.
func DiffTradeLinks(current, desired []string) (toRemove, toAdd []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	return toRemove, toAdd
}
