package courier_test

import (
	"context"
	"fmt"
	"testing"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/repository/repositories"
	"paritos.app/delivery/internal/usecase/courier"
)

type CourierUseCaseSuite struct {
	suite.Suite
	ctx          context.Context
	db           *gorm.DB
	uc           *courier.CourierUseCase
	couriers     *repositories.CourierRepo
	orders       *repositories.OrderRepo
	users        *repositories.UserRepo
	applications *repositories.ApplicationRepo
}

func (s *CourierUseCaseSuite) SetupTest() {

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(db.AutoMigrate(
		&repositories.Order{},
		&repositories.OrderItem{},
		&repositories.Courier{},
		&repositories.User{},
		&repositories.CourierApplication{},
	))

	m, err := manager.New(trmgorm.NewDefaultFactory(db))
	s.Require().NoError(err)

	s.db = db
	s.couriers = repositories.NewCourierRepo(db, trmgorm.DefaultCtxGetter)
	s.orders = repositories.NewOrderRepo(db, trmgorm.DefaultCtxGetter)
	s.users = repositories.NewUserRepo(db, trmgorm.DefaultCtxGetter)
	s.applications = repositories.NewApplicationRepo(db, trmgorm.DefaultCtxGetter)
	s.uc = courier.New(m, s.couriers, s.orders, s.users, s.applications)
	s.ctx = context.Background()
}

func TestCourierUseCaseSuite(t *testing.T) {
	suite.Run(t, new(CourierUseCaseSuite))
}

func (s *CourierUseCaseSuite) createCourier() *entity.Courier {

	saved, err := s.uc.Create(s.ctx, courier.CourierToCreateDTO{
		UserID:      5,
		DisplayName: "Pedro",
		Vehicle:     string(entity.MOTO),
	})
	s.Require().NoError(err)

	return saved
}

// activeDelivery puts an order out for delivery assigned to the courier.
func (s *CourierUseCaseSuite) activeDelivery(courierID uint64) *entity.Order {

	saved, err := s.orders.Create(s.ctx, repositories.OrderToCreateDTO{
		Items: []repositories.OrderItemToCreateDTO{
			{MenuItemID: 1, Name: "Burger", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
		Total:           decimal.NewFromInt(145),
		CustomerID:      10,
		CustomerName:    "Ana",
		CustomerAddress: "Av. Siempre Viva 123",
		RestaurantID:    3,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.orders.UpdateStatus(s.ctx, saved.ID, entity.StatusPreparing))
	s.Require().NoError(s.orders.UpdateStatus(s.ctx, saved.ID, entity.StatusReadyForPickup))
	s.Require().NoError(s.orders.AssignCourier(s.ctx, saved.ID, courierID))
	s.Require().NoError(s.couriers.SetStatus(s.ctx, courierID, entity.CourierDelivering))

	return saved
}

func (s *CourierUseCaseSuite) pendingApplication() *entity.CourierApplication {

	user, err := s.users.Create(s.ctx, repositories.UserToCreateDTO{
		Email: "luis@example.com",
		Name:  "Luis",
		Role:  entity.RoleCustomer,
	})
	s.Require().NoError(err)

	application, err := s.uc.Apply(s.ctx, courier.ApplicationToSubmitDTO{
		UserID:   user.ID,
		FullName: "Luis Hernandez",
		Phone:    "+52 55 1234 5678",
		Vehicle:  string(entity.BIKE),
	})
	s.Require().NoError(err)

	return application
}

func (s *CourierUseCaseSuite) TestCreateStartsOffline() {

	saved := s.createCourier()

	s.Equal(entity.CourierOffline, saved.Status)
	s.Equal(entity.MOTO, saved.Vehicle)
}

func (s *CourierUseCaseSuite) TestCreateRejectsUnknownVehicle() {

	_, err := s.uc.Create(s.ctx, courier.CourierToCreateDTO{
		UserID:      5,
		DisplayName: "Pedro",
		Vehicle:     "SKATEBOARD",
	})

	s.Require().Error(err)
	s.Equal(paritos.EINVALID, paritos.ErrorCode(err))
}

func (s *CourierUseCaseSuite) TestSetAvailabilityTogglesAvailableAndOffline() {

	saved := s.createCourier()

	updated, err := s.uc.SetAvailability(s.ctx, saved.ID, entity.CourierAvailable)
	s.Require().NoError(err)
	s.Equal(entity.CourierAvailable, updated.Status)

	updated, err = s.uc.SetAvailability(s.ctx, saved.ID, entity.CourierOffline)
	s.Require().NoError(err)
	s.Equal(entity.CourierOffline, updated.Status)
}

func (s *CourierUseCaseSuite) TestSetAvailabilityRejectsDelivering() {

	saved := s.createCourier()

	_, err := s.uc.SetAvailability(s.ctx, saved.ID, entity.CourierDelivering)
	s.Require().Error(err)
	s.Equal(paritos.EINVALID, paritos.ErrorCode(err))
}

func (s *CourierUseCaseSuite) TestCannotGoAvailableWithActiveDeliveries() {

	saved := s.createCourier()
	s.activeDelivery(saved.ID)

	_, err := s.uc.SetAvailability(s.ctx, saved.ID, entity.CourierAvailable)
	s.Require().Error(err)
	s.Equal(paritos.ECONFLICT, paritos.ErrorCode(err))

	reloaded, err := s.couriers.FindById(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(entity.CourierDelivering, reloaded.Status)
}

func (s *CourierUseCaseSuite) TestOfflineIsAllowedMidDelivery() {

	saved := s.createCourier()
	s.activeDelivery(saved.ID)

	updated, err := s.uc.SetAvailability(s.ctx, saved.ID, entity.CourierOffline)
	s.Require().NoError(err)
	s.Equal(entity.CourierOffline, updated.Status)
}

func (s *CourierUseCaseSuite) TestDeleteRefusedWhileDelivering() {

	saved := s.createCourier()
	order := s.activeDelivery(saved.ID)

	err := s.uc.Delete(s.ctx, saved.ID)
	s.Require().Error(err)
	s.Equal(paritos.ECONFLICT, paritos.ErrorCode(err))

	s.Require().NoError(s.orders.UpdateStatus(s.ctx, order.ID, entity.StatusDelivered))

	s.Require().NoError(s.uc.Delete(s.ctx, saved.ID))

	_, err = s.uc.GetById(s.ctx, saved.ID)
	s.Require().Error(err)
	s.Equal(paritos.ENOTFOUND, paritos.ErrorCode(err))
}

func (s *CourierUseCaseSuite) TestApplyCreatesPendingApplication() {

	application := s.pendingApplication()

	s.Equal(entity.ApplicationPending, application.Status)
	s.Equal(entity.BIKE, application.Vehicle)

	pending, err := s.uc.PendingApplications(s.ctx)
	s.Require().NoError(err)
	s.Len(*pending, 1)
}

func (s *CourierUseCaseSuite) TestApprovePromotesApplicant() {

	application := s.pendingApplication()

	promoted, err := s.uc.Approve(s.ctx, application.ID)
	s.Require().NoError(err)

	s.Equal(application.UserID, promoted.UserID)
	s.Equal("Luis Hernandez", promoted.DisplayName)
	s.Equal(entity.CourierOffline, promoted.Status)

	user, err := s.users.FindById(s.ctx, application.UserID)
	s.Require().NoError(err)
	s.Equal(entity.RoleCourier, user.Role)

	resolved, err := s.applications.FindById(s.ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(entity.ApplicationApproved, resolved.Status)

	pending, err := s.uc.PendingApplications(s.ctx)
	s.Require().NoError(err)
	s.Empty(*pending)
}

func (s *CourierUseCaseSuite) TestApproveWithMissingAccountLeavesApplicationPending() {

	application, err := s.uc.Apply(s.ctx, courier.ApplicationToSubmitDTO{
		UserID:   999,
		FullName: "Nadie",
		Phone:    "+52 55 0000 0000",
		Vehicle:  string(entity.AUTO),
	})
	s.Require().NoError(err)

	_, err = s.uc.Approve(s.ctx, application.ID)
	s.Require().Error(err)
	s.Equal(paritos.EPROFILEUPDATEFAILED, paritos.ErrorCode(err))

	reloaded, err := s.applications.FindById(s.ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(entity.ApplicationPending, reloaded.Status)

	couriers, err := s.couriers.PaginatedFetchAll(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Empty(*couriers)
}

func (s *CourierUseCaseSuite) TestApproveSurfacesPartialFailure() {

	application := s.pendingApplication()

	// break the courier record step after the role update succeeds
	s.Require().NoError(s.db.Migrator().DropTable(&repositories.Courier{}))

	_, err := s.uc.Approve(s.ctx, application.ID)
	s.Require().Error(err)
	s.Equal(paritos.EPARTIALFAILURE, paritos.ErrorCode(err))

	// the role change is already committed and left for reconciliation
	user, err := s.users.FindById(s.ctx, application.UserID)
	s.Require().NoError(err)
	s.Equal(entity.RoleCourier, user.Role)

	reloaded, err := s.applications.FindById(s.ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(entity.ApplicationPending, reloaded.Status)
}

func (s *CourierUseCaseSuite) TestApproveTwiceIsRejected() {

	application := s.pendingApplication()

	_, err := s.uc.Approve(s.ctx, application.ID)
	s.Require().NoError(err)

	_, err = s.uc.Approve(s.ctx, application.ID)
	s.Require().Error(err)
	s.Equal(paritos.EINVALID, paritos.ErrorCode(err))
}

func (s *CourierUseCaseSuite) TestApplyRefusedForExistingCourier() {

	saved := s.createCourier()

	_, err := s.uc.Apply(s.ctx, courier.ApplicationToSubmitDTO{
		UserID:   saved.UserID,
		FullName: "Pedro Otra Vez",
		Phone:    "+52 55 9876 5432",
		Vehicle:  string(entity.BIKE),
	})

	s.Require().Error(err)
	s.Equal(paritos.ECONFLICT, paritos.ErrorCode(err))

	pending, err := s.uc.PendingApplications(s.ctx)
	s.Require().NoError(err)
	s.Empty(*pending)
}

func (s *CourierUseCaseSuite) TestRejectResolvesApplication() {

	application := s.pendingApplication()

	s.Require().NoError(s.uc.Reject(s.ctx, application.ID))

	reloaded, err := s.applications.FindById(s.ctx, application.ID)
	s.Require().NoError(err)
	s.Equal(entity.ApplicationRejected, reloaded.Status)

	user, err := s.users.FindById(s.ctx, application.UserID)
	s.Require().NoError(err)
	s.Equal(entity.RoleCustomer, user.Role)

	err = s.uc.Reject(s.ctx, application.ID)
	s.Require().Error(err)
	s.Equal(paritos.EINVALID, paritos.ErrorCode(err))
}

func (s *CourierUseCaseSuite) TestAssignmentsGroupsByCourier() {

	first := s.createCourier()
	s.activeDelivery(first.ID)
	s.activeDelivery(first.ID)

	second, err := s.uc.Create(s.ctx, courier.CourierToCreateDTO{
		UserID:      6,
		DisplayName: "Marta",
		Vehicle:     string(entity.BIKE),
	})
	s.Require().NoError(err)
	s.activeDelivery(second.ID)

	assignments, err := s.uc.Assignments(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(assignments, 2)

	byCourier := map[uint64]int{}
	for _, a := range assignments {
		byCourier[a.CourierID] = len(a.Orders)
	}

	s.Equal(2, byCourier[first.ID])
	s.Equal(1, byCourier[second.ID])
}
