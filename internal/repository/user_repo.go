package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

var ErrUserExists = errors.New("user_exists")

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.User{}, &domain.Profile{})
}

// Create inserts the user together with an empty profile.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p := domain.Profile{ID: uuid.NewString(), UserID: u.ID}
		return tx.Create(&p).Error
	})
	if err != nil && isUniqueViolation(err) {
		return ErrUserExists
	}
	return err
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]any{
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"phone_number": p.PhoneNumber,
		}).Error
}
