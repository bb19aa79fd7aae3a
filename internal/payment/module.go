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

package payment

import (
	"github.com/lapviet/lapstore/internal/payment/internal/domain"
	"github.com/lapviet/lapstore/internal/payment/internal/service"
	"github.com/lapviet/lapstore/internal/payment/internal/web"
)

type (
	Handler     = web.Handler
	Service     = service.Service
	Payment     = domain.Payment
	Method      = domain.Method
	Status      = domain.Status
	IPNResponse = service.IPNResponse
)

const (
	MethodCOD   = domain.MethodCOD
	MethodVNPAY = domain.MethodVNPAY

	StatusPending   = domain.StatusPending
	StatusCompleted = domain.StatusCompleted
	StatusFailed    = domain.StatusFailed
	StatusRefunded  = domain.StatusRefunded
)

var (
	ErrInvalidMethod  = service.ErrInvalidMethod
	ErrPaymentNotPaid = service.ErrPaymentNotPaid
)

// ValidMethod 校验支付方式与子渠道的组合
var ValidMethod = domain.ValidMethod

type Module struct {
	Svc Service
	Hdl *Handler
}
