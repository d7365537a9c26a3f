package repositories

import (
	"context"
	"errors"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"gorm.io/gorm"
	"paritos.app/delivery/internal/entity"
)

// @migration
type Courier struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"index"`
	DisplayName string
	Status      string `gorm:"not null;index"`
	Rating      float64
	Vehicle     string
}

type CourierRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewCourierRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *CourierRepo {
	return &CourierRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *CourierRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm)
}

type CourierToCreateDTO struct {
	UserID      uint64
	DisplayName string
	Vehicle     string
	Rating      float64
	Status      entity.CourierStatus
}

func (s *CourierRepo) Create(ctx context.Context, newCourier CourierToCreateDTO) (*entity.Courier, error) {

	courier := Courier{
		UserID:      newCourier.UserID,
		DisplayName: newCourier.DisplayName,
		Status:      string(newCourier.Status),
		Rating:      newCourier.Rating,
		Vehicle:     newCourier.Vehicle,
	}

	if err := s.db(ctx).Create(&courier).Error; err != nil {
		return nil, persistenceError(err)
	}

	res := toCourierEntity(courier)

	return &res, nil
}

func (s *CourierRepo) FindById(ctx context.Context, id uint64) (*entity.Courier, error) {

	var courier Courier

	err := s.db(ctx).Model(&Courier{}).First(&courier, int(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("courier not found", err)
		}

		return nil, persistenceError(err)
	}

	res := toCourierEntity(courier)

	return &res, nil
}

func (s *CourierRepo) FindByUserId(ctx context.Context, userID uint64) (*entity.Courier, error) {

	var courier Courier

	err := s.db(ctx).Model(&Courier{}).Where("user_id = ?", userID).First(&courier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("courier not found", err)
		}

		return nil, persistenceError(err)
	}

	res := toCourierEntity(courier)

	return &res, nil
}

func (s *CourierRepo) PaginatedFetchAll(ctx context.Context, offset, limit int32) (*[]entity.Courier, error) {

	couriers := []Courier{}

	err := s.db(ctx).Model(&Courier{}).
		Limit(int(limit)).Offset(int(offset)).
		Find(&couriers).Error
	if err != nil {
		return nil, persistenceError(err)
	}

	res := []entity.Courier{}
	for _, c := range couriers {
		res = append(res, toCourierEntity(c))
	}

	return &res, nil
}

func (s *CourierRepo) SetStatus(ctx context.Context, id uint64, status entity.CourierStatus) error {

	res := s.db(ctx).Model(&Courier{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("courier not found", nil)
	}

	return nil
}

func (s *CourierRepo) Delete(ctx context.Context, id uint64) error {

	res := s.db(ctx).Delete(&Courier{}, int(id))
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("courier not found", nil)
	}

	return nil
}

func toCourierEntity(c Courier) entity.Courier {
	return entity.Courier{
		ID:          c.ID,
		UserID:      c.UserID,
		DisplayName: c.DisplayName,
		Status:      entity.CourierStatus(c.Status),
		Rating:      c.Rating,
		Vehicle:     entity.VehicleType(c.Vehicle),
	}
}
