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

package notification

import (
	"github.com/ecodeclub/mq-api"

	"github.com/lapviet/lapstore/internal/email"
	"github.com/lapviet/lapstore/internal/notification/internal/event"
	"github.com/lapviet/lapstore/internal/notification/internal/service"
	"github.com/lapviet/lapstore/internal/user"
)

type (
	Service                   = service.Service
	OrderCreatedEventConsumer = event.OrderCreatedEventConsumer
)

type Module struct {
	Svc      Service
	Consumer *OrderCreatedEventConsumer
}

func InitModule(q mq.MQ, emailSvc email.Service, userModule *user.Module) (*Module, error) {
	svc := service.NewService(userModule.Svc, emailSvc)
	consumer, err := event.NewOrderCreatedEventConsumer(svc, q)
	if err != nil {
		return nil, err
	}
	return &Module{
		Svc:      svc,
		Consumer: consumer,
	}, nil
}
