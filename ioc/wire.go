//go:build wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/lapviet/lapstore/internal/cart"
	"github.com/lapviet/lapstore/internal/checkout"
	"github.com/lapviet/lapstore/internal/cos"
	"github.com/lapviet/lapstore/internal/geo"
	"github.com/lapviet/lapstore/internal/order"
	"github.com/lapviet/lapstore/internal/payment"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
	"github.com/lapviet/lapstore/internal/user"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ, InitES)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		InitSession,
		InitEmailService,
		InitGeoModule,
		InitCosModule,
		InitNotificationModule,
		user.InitModule,
		product.InitModule,
		cart.InitModule,
		shipping.InitModule,
		payment.InitModule,
		order.InitModule,
		checkout.InitModule,
		wire.FieldsOf(new(*user.Module), "Hdl"),
		wire.FieldsOf(new(*product.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*cart.Module), "Hdl"),
		wire.FieldsOf(new(*shipping.Module), "Hdl"),
		wire.FieldsOf(new(*geo.Module), "Hdl"),
		wire.FieldsOf(new(*payment.Module), "Hdl"),
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl"),
		wire.FieldsOf(new(*checkout.Module), "Hdl"),
		wire.FieldsOf(new(*cos.Module), "Hdl"),
		initReleaseJob,
		initCronJobs,
		initMQConsumers,
		initGinxServer,
		InitAdminServer)
	return new(App), nil
}
