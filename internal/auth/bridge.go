package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"shiptrack/internal/metrics"
	"shiptrack/internal/models"
)

// repairBudget caps how many times a failed credential check may trigger
// the repair-and-retry step during one sign-in attempt.
const repairBudget = 1

var syntheticEmailPattern = regexp.MustCompile(`^phone-(\d+)@shiptrack\.local$`)

var (
	// ErrProfileNotFound and ErrPinMismatch are surfaced by the repair
	// endpoint only; sign-in collapses both into ErrInvalidCredentials.
	ErrProfileNotFound = errors.New("user not found or inactive")
	ErrPinMismatch     = errors.New("invalid PIN")
)

// Session is the client-held projection of an authenticated user.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      SessionUser `json:"user"`
}

type SessionUser struct {
	ID       string      `json:"id"`
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
	Address  string      `json:"address"`
}

// Service bridges (phone, PIN) credentials onto the provider's
// (email, password) model and resolves provider identities back to
// application profiles.
type Service struct {
	profiles ProfileStore
	accounts AccountStore
	tokens   SessionTokens
}

func NewService(profiles ProfileStore, accounts AccountStore, tokens SessionTokens) *Service {
	return &Service{profiles: profiles, accounts: accounts, tokens: tokens}
}

// SignInWithPhonePIN attempts provider sign-in with the synthetic email
// derived from the phone. A failed credential check runs the repair step
// and retries once. The resolved profile's role must be in allowedRoles
// (when non-empty) or the freshly issued provider session is revoked.
func (s *Service) SignInWithPhonePIN(ctx context.Context, phone, pin string, allowedRoles []models.Role) (*Session, error) {
	email := PhoneToEmail(phone)
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.verifyCredentials(ctx, email, pin)
	if err != nil {
		return nil, err
	}

	for attempt := 0; account == nil && attempt < repairBudget; attempt++ {
		if _, repairErr := s.Repair(ctx, phone, pin); repairErr != nil {
			logrus.WithField("phone", FormatPhone(phone)).WithError(repairErr).Warn("sign-in repair failed")
			return nil, ErrInvalidCredentials
		}
		account, err = s.verifyCredentials(ctx, email, pin)
		if err != nil {
			return nil, err
		}
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	token, jti, expiresAt, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	profile, err := s.ResolveProfile(ctx, account)
	if err != nil {
		s.tokens.Revoke(jti)
		return nil, err
	}
	if profile == nil {
		// The account may point at a profile the first resolution missed;
		// one more repair re-links metadata before giving up.
		if _, repairErr := s.Repair(ctx, phone, pin); repairErr == nil {
			if account, err = s.accounts.ByEmail(ctx, email); err != nil {
				s.tokens.Revoke(jti)
				return nil, err
			}
			if account != nil {
				profile, err = s.ResolveProfile(ctx, account)
				if err != nil {
					s.tokens.Revoke(jti)
					return nil, err
				}
			}
		}
	}

	if profile == nil || !roleAllowed(profile.Role, allowedRoles) {
		s.tokens.Revoke(jti)
		return nil, ErrInvalidCredentials
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User: SessionUser{
			ID:       profile.ID,
			FullName: profile.FullName,
			Phone:    profile.Phone,
			Role:     profile.Role,
			Address:  profile.Address,
		},
	}, nil
}

// Repair lazily creates or syncs the provider-side account for a legacy
// profile found by phone. It verifies the profile's stored PIN digest
// before touching anything.
func (s *Service) Repair(ctx context.Context, phone, pin string) (*models.User, error) {
	profile, err := s.findProfileByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.Role.Valid() {
		return nil, ErrProfileNotFound
	}

	pinHash := HashPin(pin)
	if profile.PinHash != "" && profile.PinHash != pinHash {
		return nil, ErrPinMismatch
	}

	normalizedPhone := FormatPhone(profile.Phone)
	if normalizedPhone == "" {
		normalizedPhone = FormatPhone(phone)
	}
	email := PhoneToEmail(normalizedPhone)
	if email == "" {
		return nil, ErrInvalidPhone
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.AuthAccount{
		Email:        email,
		PasswordHash: string(passwordHash),
		Phone:        normalizedPhone,
		LegacyUserID: profile.ID,
		Role:         profile.Role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if !errors.Is(err, ErrAccountExists) {
			return nil, err
		}
		existing, err := s.accounts.ByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, errors.New("existing auth account not found")
		}
		existing.PasswordHash = string(passwordHash)
		existing.Phone = normalizedPhone
		existing.LegacyUserID = profile.ID
		existing.Role = profile.Role
		if err := s.accounts.Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	if err := s.profiles.SyncCredentials(ctx, profile.ID, normalizedPhone, pinHash, true); err != nil {
		return nil, err
	}

	profile.Phone = normalizedPhone
	profile.PinHash = pinHash
	profile.Active = true
	metrics.AuthRepairsTotal.Inc()
	return profile, nil
}

// ResolveProfile maps a provider account back to an application profile:
// linked legacy id first, then the account id itself, then phone variants.
func (s *Service) ResolveProfile(ctx context.Context, account *models.AuthAccount) (*models.User, error) {
	if account.LegacyUserID != "" && account.LegacyUserID != account.ID {
		profile, err := s.profiles.ActiveByID(ctx, account.LegacyUserID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			return normalizeProfile(profile), nil
		}
	}

	profile, err := s.profiles.ActiveByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return normalizeProfile(profile), nil
	}

	phone := phoneFromAccount(account)
	if phone == "" {
		return nil, nil
	}
	profile, err = s.profiles.ActiveByPhone(ctx, PhoneVariants(phone))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return normalizeProfile(profile), nil
}

// ProfileForAccount resolves by account id, for request-time session
// resolution in the middleware and controllers.
func (s *Service) ProfileForAccount(ctx context.Context, accountID string) (*models.User, error) {
	account, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return s.ResolveProfile(ctx, account)
}

// ActiveProfileByID looks up an active profile directly, bypassing the
// account layer.
func (s *Service) ActiveProfileByID(ctx context.Context, id string) (*models.User, error) {
	profile, err := s.profiles.ActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return normalizeProfile(profile), nil
}

func (s *Service) verifyCredentials(ctx context.Context, email, pin string) (*models.AuthAccount, error) {
	account, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(pin)) != nil {
		return nil, nil
	}
	return account, nil
}

// findProfileByPhone tries the phone variants first, then falls back to a
// digit-sequence scan across active profiles for rows stored with
// formatting the variant lookup misses.
func (s *Service) findProfileByPhone(ctx context.Context, phone string) (*models.User, error) {
	profile, err := s.profiles.ActiveByPhone(ctx, PhoneVariants(phone))
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	needle := DigitsOnly(phone)
	if needle == "" {
		return nil, nil
	}
	all, err := s.profiles.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if DigitsOnly(all[i].Phone) == needle {
			return &all[i], nil
		}
	}
	return nil, nil
}

func phoneFromAccount(account *models.AuthAccount) string {
	if account.Phone != "" {
		return FormatPhone(account.Phone)
	}
	if m := syntheticEmailPattern.FindStringSubmatch(account.Email); m != nil {
		return FormatPhone(m[1])
	}
	return ""
}

func normalizeProfile(profile *models.User) *models.User {
	normalized := *profile
	normalized.Role = models.Role(strings.ToLower(string(profile.Role)))
	return &normalized
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
