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

package shipping

import (
	"github.com/lapviet/lapstore/internal/shipping/internal/domain"
	"github.com/lapviet/lapstore/internal/shipping/internal/service"
	"github.com/lapviet/lapstore/internal/shipping/internal/web"
)

type (
	Handler  = web.Handler
	Service  = service.Service
	Province = domain.Province
	Ward     = domain.Ward
	Quote    = domain.Quote
	Reason   = domain.Reason
)

const (
	ReasonNoProvince      = domain.ReasonNoProvince
	ReasonFreeByProvince  = domain.ReasonFreeByProvince
	ReasonHCMSubtotalFree = domain.ReasonHCMSubtotalFree
	ReasonStandard        = domain.ReasonStandard
)

type Module struct {
	Svc Service
	Hdl *Handler
}
