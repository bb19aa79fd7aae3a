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

package payment

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"

	"github.com/lapviet/lapstore/internal/payment/internal/event"
	"github.com/lapviet/lapstore/internal/payment/internal/repository"
	"github.com/lapviet/lapstore/internal/payment/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/payment/internal/service"
	"github.com/lapviet/lapstore/internal/payment/internal/web"
	"github.com/lapviet/lapstore/internal/payment/ioc"
)

func InitModule(db *egorm.Component, q mq.MQ) *Module {
	wire.Build(
		InitTablesOnce,
		ioc.InitVNPayConfig,
		ioc.InitVNPayClient,
		ioc.InitTxnRefGenerator,
		InitPaymentEventProducer,
		repository.NewPaymentRepository,
		service.NewService,
		web.NewHandler,
		wire.Struct(new(Module), "*"))
	return new(Module)
}

func InitPaymentEventProducer(q mq.MQ) event.Producer {
	producer, err := event.NewPaymentEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}
