package auth

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"shiptrack/internal/models"
)

// GormProfileStore implements ProfileStore over the users table.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) ActiveByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormProfileStore) ActiveByPhone(ctx context.Context, variants []string) (*models.User, error) {
	for _, variant := range variants {
		var user models.User
		err := s.db.WithContext(ctx).
			Where("phone = ? AND active = ?", variant, true).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, nil
}

func (s *GormProfileStore) ListActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormProfileStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormProfileStore) Upsert(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *GormProfileStore) SyncCredentials(ctx context.Context, id, phone, pinHash string, activate bool) error {
	updates := map[string]interface{}{
		"phone":    phone,
		"pin_hash": pinHash,
	}
	if activate {
		updates["active"] = true
	}
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// GormAccountStore implements AccountStore over the auth_accounts table.
type GormAccountStore struct {
	db *gorm.DB
}

func NewGormAccountStore(db *gorm.DB) *GormAccountStore {
	return &GormAccountStore{db: db}
}

func (s *GormAccountStore) ByID(ctx context.Context, id string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *GormAccountStore) ByEmail(ctx context.Context, email string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *GormAccountStore) Create(ctx context.Context, account *models.AuthAccount) error {
	err := s.db.WithContext(ctx).Create(account).Error
	if err == nil {
		return nil
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAccountExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAccountExists
	}
	return err
}

func (s *GormAccountStore) Update(ctx context.Context, account *models.AuthAccount) error {
	return s.db.WithContext(ctx).Save(account).Error
}
