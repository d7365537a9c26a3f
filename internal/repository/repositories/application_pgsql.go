package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"paritos.app/delivery/internal/entity"
)

// @migration
type CourierApplication struct {
	ID       uint64 `gorm:"primaryKey"`
	UserID   uint64 `gorm:"index"`
	FullName string
	Phone    string
	Vehicle  string
	Status   string `gorm:"not null;index"`
	Date     time.Time
}

type ApplicationRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewApplicationRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *ApplicationRepo {
	return &ApplicationRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *ApplicationRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm)
}

type ApplicationToCreateDTO struct {
	UserID   uint64
	FullName string
	Phone    string
	Vehicle  string
	Date     time.Time
}

func (s *ApplicationRepo) Create(ctx context.Context, newApplication ApplicationToCreateDTO) (*entity.CourierApplication, error) {

	application := CourierApplication{
		UserID:   newApplication.UserID,
		FullName: newApplication.FullName,
		Phone:    newApplication.Phone,
		Vehicle:  newApplication.Vehicle,
		Status:   string(entity.ApplicationPending),
		Date:     newApplication.Date,
	}

	if err := s.db(ctx).Create(&application).Error; err != nil {
		return nil, persistenceError(err)
	}

	res := toApplicationEntity(application)

	return &res, nil
}

func (s *ApplicationRepo) FindById(ctx context.Context, id uint64) (*entity.CourierApplication, error) {

	var application CourierApplication

	err := s.db(ctx).Model(&CourierApplication{}).First(&application, int(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("application not found", err)
		}

		return nil, persistenceError(err)
	}

	res := toApplicationEntity(application)

	return &res, nil
}

func (s *ApplicationRepo) AllByStatus(ctx context.Context, status entity.ApplicationStatus) (*[]entity.CourierApplication, error) {

	applications := []CourierApplication{}

	err := s.db(ctx).Model(&CourierApplication{}).
		Where("status = ?", string(status)).
		Order("date ASC").
		Find(&applications).Error
	if err != nil {
		return nil, persistenceError(err)
	}

	res := []entity.CourierApplication{}
	for _, a := range applications {
		res = append(res, toApplicationEntity(a))
	}

	return &res, nil
}

func (s *ApplicationRepo) SetStatus(ctx context.Context, id uint64, status entity.ApplicationStatus) error {

	res := s.db(ctx).Model(&CourierApplication{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("application not found", nil)
	}

	return nil
}

func toApplicationEntity(a CourierApplication) entity.CourierApplication {
	return entity.CourierApplication{
		ID:       a.ID,
		UserID:   a.UserID,
		FullName: a.FullName,
		Phone:    a.Phone,
		Vehicle:  entity.VehicleType(a.Vehicle),
		Status:   entity.ApplicationStatus(a.Status),
		Date:     a.Date,
	}
}
