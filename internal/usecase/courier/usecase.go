package courier

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"gopkg.in/go-playground/validator.v9"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/repository/repositories"
)

type CourierUseCase struct {
	trm             *manager.Manager
	validator       *validator.Validate
	CourierRepo     *repositories.CourierRepo
	OrderRepo       *repositories.OrderRepo
	UserRepo        *repositories.UserRepo
	ApplicationRepo *repositories.ApplicationRepo
}

func New(
	trm *manager.Manager,
	currepo *repositories.CourierRepo,
	ordrepo *repositories.OrderRepo,
	usrrepo *repositories.UserRepo,
	apprepo *repositories.ApplicationRepo,
) *CourierUseCase {

	v := validator.New()
	v.RegisterValidation("courier_vehicle", courier_vehicle)

	return &CourierUseCase{
		trm:             trm,
		CourierRepo:     currepo,
		OrderRepo:       ordrepo,
		UserRepo:        usrrepo,
		ApplicationRepo: apprepo,
		validator:       v,
	}
}

// Create registers a courier by manual admin entry. New couriers start
// offline and go available themselves.
func (uc *CourierUseCase) Create(ctx context.Context, newCourier CourierToCreateDTO) (*entity.Courier, error) {
	op := "CourierUseCase.Create"

	if err := uc.validator.Struct(newCourier); err != nil {
		return nil, paritos.ErrorWithCode(paritos.OpError(op, err), paritos.EINVALID)
	}

	var saved *entity.Courier

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = uc.CourierRepo.Create(ctx, repositories.CourierToCreateDTO{
			UserID:      newCourier.UserID,
			DisplayName: newCourier.DisplayName,
			Vehicle:     newCourier.Vehicle,
			Rating:      newCourier.Rating,
			Status:      entity.CourierOffline,
		})
		return err
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return saved, nil
}

func (uc *CourierUseCase) GetById(ctx context.Context, id uint64) (*entity.Courier, error) {
	op := "CourierUseCase.GetById"

	courier, err := uc.CourierRepo.FindById(ctx, id)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return courier, nil
}

func (uc *CourierUseCase) PaginatedGetAll(ctx context.Context, offset, limit int32) (*[]entity.Courier, error) {
	op := "CourierUseCase.PaginatedGetAll"

	couriers, err := uc.CourierRepo.PaginatedFetchAll(ctx, offset, limit)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return couriers, nil
}

// SetAvailability lets a courier toggle between available and offline.
// Delivering is owned by the lifecycle coordinator, and a courier with
// orders still out for delivery cannot declare itself available.
func (uc *CourierUseCase) SetAvailability(ctx context.Context, courierID uint64, status entity.CourierStatus) (*entity.Courier, error) {
	op := "CourierUseCase.SetAvailability"

	if status != entity.CourierAvailable && status != entity.CourierOffline {
		return nil, &paritos.Error{
			Op:      op,
			Code:    paritos.EINVALID,
			Message: "courier status can only be set to available or offline",
		}
	}

	var updated *entity.Courier

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		courier, err := uc.CourierRepo.FindById(ctx, courierID)
		if err != nil {
			return err
		}

		if status == entity.CourierAvailable {
			active, err := uc.OrderRepo.ActiveCountByCourierId(ctx, courier.ID)
			if err != nil {
				return err
			}
			if active > 0 {
				return &paritos.Error{
					Op:      op,
					Code:    paritos.ECONFLICT,
					Message: "courier still has active deliveries",
					Fields: map[string]interface{}{
						"courier_id":     courier.ID,
						"active_orders":  active,
						"courier_status": courier.Status,
					},
				}
			}
		}

		if err := uc.CourierRepo.SetStatus(ctx, courier.ID, status); err != nil {
			return err
		}

		courier.Status = status
		updated = courier

		return nil
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return updated, nil
}

// Delete removes a courier record. Couriers with orders still out for
// delivery are not deletable.
func (uc *CourierUseCase) Delete(ctx context.Context, courierID uint64) error {
	op := "CourierUseCase.Delete"

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		courier, err := uc.CourierRepo.FindById(ctx, courierID)
		if err != nil {
			return err
		}

		active, err := uc.OrderRepo.ActiveCountByCourierId(ctx, courier.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.ECONFLICT,
				Message: "courier still has active deliveries",
				Fields: map[string]interface{}{
					"courier_id":    courier.ID,
					"active_orders": active,
				},
			}
		}

		return uc.CourierRepo.Delete(ctx, courier.ID)
	})
	if err != nil {
		return paritos.OpError(op, err)
	}

	return nil
}

// Apply submits a courier application from a customer account. An
// account that already has a courier record cannot apply again.
func (uc *CourierUseCase) Apply(ctx context.Context, application ApplicationToSubmitDTO) (*entity.CourierApplication, error) {
	op := "CourierUseCase.Apply"

	if err := uc.validator.Struct(application); err != nil {
		return nil, paritos.ErrorWithCode(paritos.OpError(op, err), paritos.EINVALID)
	}

	var saved *entity.CourierApplication

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		existing, err := uc.CourierRepo.FindByUserId(ctx, application.UserID)
		if err != nil && paritos.ErrorCode(err) != paritos.ENOTFOUND {
			return err
		}
		if existing != nil {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.ECONFLICT,
				Message: "user is already a courier",
				Fields: map[string]interface{}{
					"user_id":    application.UserID,
					"courier_id": existing.ID,
				},
			}
		}

		saved, err = uc.ApplicationRepo.Create(ctx, repositories.ApplicationToCreateDTO{
			UserID:   application.UserID,
			FullName: application.FullName,
			Phone:    application.Phone,
			Vehicle:  application.Vehicle,
			Date:     time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return saved, nil
}

func (uc *CourierUseCase) PendingApplications(ctx context.Context) (*[]entity.CourierApplication, error) {
	op := "CourierUseCase.PendingApplications"

	applications, err := uc.ApplicationRepo.AllByStatus(ctx, entity.ApplicationPending)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return applications, nil
}

// Approve promotes a pending application: account role first, then the
// courier record, then the application status. The three writes are
// deliberately sequential without a surrounding transaction; a failure
// after the role update surfaces as partial_failure with the ids an
// operator needs to reconcile by hand.
func (uc *CourierUseCase) Approve(ctx context.Context, applicationID uint64) (*entity.Courier, error) {
	op := "CourierUseCase.Approve"

	application, err := uc.ApplicationRepo.FindById(ctx, applicationID)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	if application.Status != entity.ApplicationPending {
		return nil, &paritos.Error{
			Op:      op,
			Code:    paritos.EINVALID,
			Message: "application has already been resolved",
			Fields: map[string]interface{}{
				"application_id":     application.ID,
				"application_status": application.Status,
			},
		}
	}

	if err := uc.UserRepo.SetRole(ctx, application.UserID, entity.RoleCourier); err != nil {
		return nil, &paritos.Error{
			Op:      op,
			Code:    paritos.EPROFILEUPDATEFAILED,
			Message: "could not promote the applicant's account",
			Err:     err,
			Fields: map[string]interface{}{
				"application_id": application.ID,
				"user_id":        application.UserID,
			},
		}
	}

	courier, err := uc.CourierRepo.Create(ctx, repositories.CourierToCreateDTO{
		UserID:      application.UserID,
		DisplayName: application.FullName,
		Vehicle:     string(application.Vehicle),
		Status:      entity.CourierOffline,
	})
	if err != nil {
		return nil, &paritos.Error{
			Op:      op,
			Code:    paritos.EPARTIALFAILURE,
			Message: "account promoted but courier record creation failed",
			Err:     err,
			Fields: map[string]interface{}{
				"application_id": application.ID,
				"user_id":        application.UserID,
			},
		}
	}

	if err := uc.ApplicationRepo.SetStatus(ctx, application.ID, entity.ApplicationApproved); err != nil {
		return nil, &paritos.Error{
			Op:      op,
			Code:    paritos.EPARTIALFAILURE,
			Message: "courier created but application not marked approved",
			Err:     err,
			Fields: map[string]interface{}{
				"application_id": application.ID,
				"user_id":        application.UserID,
				"courier_id":     courier.ID,
			},
		}
	}

	return courier, nil
}

func (uc *CourierUseCase) Reject(ctx context.Context, applicationID uint64) error {
	op := "CourierUseCase.Reject"

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		application, err := uc.ApplicationRepo.FindById(ctx, applicationID)
		if err != nil {
			return err
		}

		if application.Status != entity.ApplicationPending {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALID,
				Message: "application has already been resolved",
				Fields: map[string]interface{}{
					"application_id":     application.ID,
					"application_status": application.Status,
				},
			}
		}

		return uc.ApplicationRepo.SetStatus(ctx, application.ID, entity.ApplicationRejected)
	})
	if err != nil {
		return paritos.OpError(op, err)
	}

	return nil
}

// Assignments returns orders currently out for delivery grouped per
// courier.
func (uc *CourierUseCase) Assignments(ctx context.Context) ([]CourierAssignmentsDTO, error) {
	op := "CourierUseCase.Assignments"

	orders, err := uc.OrderRepo.AllByStatus(ctx, entity.StatusOutForDelivery)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	grouped := map[uint64]int{}
	res := []CourierAssignmentsDTO{}

	for _, order := range *orders {
		if order.CourierID == nil {
			continue
		}

		idx, ok := grouped[*order.CourierID]
		if !ok {
			res = append(res, CourierAssignmentsDTO{CourierID: *order.CourierID})
			idx = len(res) - 1
			grouped[*order.CourierID] = idx
		}

		res[idx].Orders = append(res[idx].Orders, order)
	}

	return res, nil
}
