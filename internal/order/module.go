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

package order

import (
	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/order/internal/event"
	"github.com/lapviet/lapstore/internal/order/internal/job"
	"github.com/lapviet/lapstore/internal/order/internal/service"
	"github.com/lapviet/lapstore/internal/order/internal/web"
)

type (
	Handler              = web.Handler
	AdminHandler         = web.AdminHandler
	Service              = service.Service
	CreateOrderCmd       = service.CreateOrderCmd
	Order                = domain.Order
	Item                 = domain.Item
	Address              = domain.Address
	Preview              = domain.Preview
	StockWarning         = domain.StockWarning
	Status               = domain.Status
	PaymentEventConsumer = event.PaymentEventConsumer
	ReleaseJob           = job.ReleaseReservationsJob
)

const (
	StatusAwaitingPayment = domain.StatusAwaitingPayment
	StatusProcessing      = domain.StatusProcessing
	StatusShipping        = domain.StatusShipping
	StatusDelivered       = domain.StatusDelivered
	StatusCancelled       = domain.StatusCancelled
	StatusFailed          = domain.StatusFailed
)

var (
	ErrOrderNotFound     = service.ErrOrderNotFound
	ErrStockNotEnough    = service.ErrStockNotEnough
	ErrCancelNotAllowed  = service.ErrCancelNotAllowed
	ErrAddressChangeDeny = service.ErrAddressChangeDeny

	// CanCancel 取消资格判定, 供前端展示取消按钮的服务端口径
	CanCancel = service.CanCancel

	NewReleaseJob = job.NewReleaseReservationsJob
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
	Consumer *PaymentEventConsumer
}
