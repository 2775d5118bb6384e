package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernameAndRole is the login lookup: the claimed role is part of
// the predicate, so a wrong role claim fails exactly like a wrong username.
func (r *UserRepository) FindByUsernameAndRole(ctx context.Context, username, role string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ? AND role = ?", username, role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context, roleFilter string) ([]*domain.User, error) {
	var users []*domain.User
	query := r.db.WithContext(ctx).Model(&domain.User{}).Order("id")

	if roleFilter != "" {
		query = query.Where("role = ?", roleFilter)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
