package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"golang.org/x/sync/errgroup"
	"paritos.app/delivery/config"
	"paritos.app/delivery/internal/http"
	"paritos.app/delivery/internal/http/controller"
	"paritos.app/delivery/internal/notifier"
	"paritos.app/delivery/internal/repository/repositories"
	"paritos.app/delivery/internal/usecase/courier"
	"paritos.app/delivery/internal/usecase/notification"
	"paritos.app/delivery/internal/usecase/order"
	"paritos.app/delivery/pkg/db/postgresql"
)

func main() {

	dbConf := config.DatabaseConf()
	db := postgresql.GetInstance(
		dbConf.Pgsql.Host,
		dbConf.Pgsql.Username,
		dbConf.Pgsql.Password,
		dbConf.Pgsql.Database,
		dbConf.Pgsql.Port,
	)

	appConf := config.NewAppConfig()

	db.AutoMigrate(
		&repositories.Order{},
		&repositories.OrderItem{},
		&repositories.Courier{},
		&repositories.Notification{},
		&repositories.User{},
		&repositories.CourierApplication{},
	)

	orderRepo := repositories.NewOrderRepo(db, trmgorm.DefaultCtxGetter)
	courierRepo := repositories.NewCourierRepo(db, trmgorm.DefaultCtxGetter)
	notificationRepo := repositories.NewNotificationRepo(db, trmgorm.DefaultCtxGetter)
	userRepo := repositories.NewUserRepo(db, trmgorm.DefaultCtxGetter)
	applicationRepo := repositories.NewApplicationRepo(db, trmgorm.DefaultCtxGetter)

	m, err := manager.New(trmgorm.NewDefaultFactory(db))
	if err != nil {
		panic(err)
	}

	var emitter notifier.Emitter = notifier.NewLogEmitter()

	brokerConf := config.BrokerConf()
	if brokerConf.URL != "" {
		amqpEmitter, err := notifier.NewAMQPEmitter(brokerConf.URL)
		if err != nil {
			log.Fatalf("Could not connect to broker :%v", err)
		}
		defer amqpEmitter.Close()

		emitter = amqpEmitter
	}

	orderUseCase := order.New(m, orderRepo, courierRepo, notificationRepo, emitter)
	courierUseCase := courier.New(m, courierRepo, orderRepo, userRepo, applicationRepo)
	notificationUseCase := notification.New(notificationRepo)

	cs := http.Controllers{
		CourierController:      controller.NewCourierController(courierUseCase),
		OrderController:        controller.NewOrderController(orderUseCase),
		NotificationController: controller.NewNotificationController(notificationUseCase),
	}
	r := http.NewRouter(cs)

	e := http.NewHttpServer(appConf)
	r.SetupRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return e.Start(appConf.HTTPAddr)
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
