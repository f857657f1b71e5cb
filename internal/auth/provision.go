package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shiptrack/internal/models"
)

// Provision creates a provider account plus profile row for a new user.
// Field presence and role validity are checked at the HTTP edge; this
// assumes a valid role.
func (s *Service) Provision(ctx context.Context, fullName, phone, address string, role models.Role, pin string) (*models.User, error) {
	normalizedPhone := FormatPhone(phone)
	email := PhoneToEmail(normalizedPhone)
	if normalizedPhone == "" || email == "" {
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
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       account.ID,
		FullName: fullName,
		Phone:    normalizedPhone,
		Role:     role,
		Address:  address,
		Active:   true,
		PinHash:  HashPin(pin),
	}
	if err := s.profiles.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type MigrationFailure struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Error  string `json:"error"`
}

type MigrationReport struct {
	Total    int                `json:"total"`
	Created  int                `json:"created"`
	Skipped  int                `json:"skipped"`
	Failed   int                `json:"failed"`
	Failures []MigrationFailure `json:"failures"`
}

// MigrateAll provisions provider accounts for every existing profile row
// using one shared temporary PIN. Rows whose account already exists count
// as skipped, not failed, and add no failure entry. Processing is
// sequential; one bad row never aborts the batch.
func (s *Service) MigrateAll(ctx context.Context, tempPin string) (*MigrationReport, error) {
	users, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{
		Total:    len(users),
		Failures: []MigrationFailure{},
	}

	pinHash := HashPin(tempPin)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(tempPin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	for i := range users {
		user := &users[i]

		normalizedPhone := FormatPhone(user.Phone)
		email := PhoneToEmail(normalizedPhone)
		if normalizedPhone == "" || email == "" || !user.Role.Valid() {
			report.Failed++
			report.Failures = append(report.Failures, MigrationFailure{
				UserID: user.ID,
				Phone:  user.Phone,
				Error:  "invalid phone or role",
			})
			continue
		}

		account := &models.AuthAccount{
			Email:        email,
			PasswordHash: string(passwordHash),
			Phone:        normalizedPhone,
			LegacyUserID: user.ID,
			Role:         user.Role,
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			if errors.Is(err, ErrAccountExists) {
				report.Skipped++
				continue
			}
			report.Failed++
			report.Failures = append(report.Failures, MigrationFailure{
				UserID: user.ID,
				Phone:  user.Phone,
				Error:  err.Error(),
			})
			continue
		}

		if err := s.profiles.SyncCredentials(ctx, user.ID, normalizedPhone, pinHash, false); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, MigrationFailure{
				UserID: user.ID,
				Phone:  user.Phone,
				Error:  err.Error(),
			})
			continue
		}

		report.Created++
	}

	return report, nil
}
