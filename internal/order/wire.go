// Copyright 2025 lapviet
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"

	"github.com/lapviet/lapstore/internal/order/internal/event"
	"github.com/lapviet/lapstore/internal/order/internal/repository"
	"github.com/lapviet/lapstore/internal/order/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/order/internal/service"
	"github.com/lapviet/lapstore/internal/order/internal/web"
	"github.com/lapviet/lapstore/internal/payment"
	"github.com/lapviet/lapstore/internal/pkg/sequencenumber"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
)

func InitModule(db *egorm.Component, q mq.MQ, cache ecache.Cache,
	productModule *product.Module,
	shippingModule *shipping.Module,
	paymentModule *payment.Module) *Module {
	wire.Build(
		InitTablesOnce,
		repository.NewRepository,
		sequencenumber.NewGenerator,
		InitOrderEventProducer,
		service.NewService,
		web.NewHandler,
		web.NewAdminHandler,
		InitPaymentEventConsumer,
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*shipping.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		wire.Struct(new(Module), "*"))
	return new(Module)
}

func InitOrderEventProducer(q mq.MQ) event.OrderEventProducer {
	producer, err := event.NewOrderEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

func InitPaymentEventConsumer(svc service.Service, q mq.MQ) *event.PaymentEventConsumer {
	consumer, err := event.NewPaymentEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return consumer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
