package repositories

import (
	"context"
	"errors"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"paritos.app/delivery/internal/entity"
)

// @migration
type User struct {
	ID    uint64 `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
	Name  string
	Role  string `gorm:"not null"`
}

type UserRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewUserRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *UserRepo {
	return &UserRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *UserRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm)
}

type UserToCreateDTO struct {
	Email string
	Name  string
	Role  entity.Role
}

func (s *UserRepo) Create(ctx context.Context, newUser UserToCreateDTO) (*entity.User, error) {

	user := User{
		Email: newUser.Email,
		Name:  newUser.Name,
		Role:  string(newUser.Role),
	}

	if err := s.db(ctx).Create(&user).Error; err != nil {
		return nil, persistenceError(err)
	}

	res := toUserEntity(user)

	return &res, nil
}

func (s *UserRepo) FindById(ctx context.Context, id uint64) (*entity.User, error) {

	var user User

	err := s.db(ctx).Model(&User{}).First(&user, int(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("user not found", err)
		}

		return nil, persistenceError(err)
	}

	res := toUserEntity(user)

	return &res, nil
}

func (s *UserRepo) SetRole(ctx context.Context, id uint64, role entity.Role) error {

	res := s.db(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("role", string(role))
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("user not found", nil)
	}

	return nil
}

func toUserEntity(u User) entity.User {
	return entity.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  entity.Role(u.Role),
	}
}
