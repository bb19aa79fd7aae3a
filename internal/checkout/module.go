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

package checkout

import (
	"github.com/ecodeclub/ecache"

	"github.com/lapviet/lapstore/internal/cart"
	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
	"github.com/lapviet/lapstore/internal/checkout/internal/service"
	"github.com/lapviet/lapstore/internal/checkout/internal/web"
	"github.com/lapviet/lapstore/internal/geo"
	"github.com/lapviet/lapstore/internal/order"
	"github.com/lapviet/lapstore/internal/shipping"
)

type (
	Handler        = web.Handler
	Service        = service.Service
	Session        = service.Session
	Config         = service.Config
	ChangeProposal = service.ChangeProposal
	Intent         = domain.Intent
	IntentItem     = domain.IntentItem
	Mode           = domain.Mode
	ViewItem       = domain.ViewItem
	Destination    = domain.Destination
	Contact        = domain.Contact
	SubmitResult   = domain.SubmitResult
	PricingSource  = domain.PricingSource
)

const (
	ModeCart   = domain.ModeCart
	ModeBuyNow = domain.ModeBuyNow

	PricingNone          = domain.PricingNone
	PricingEstimated     = domain.PricingEstimated
	PricingAuthoritative = domain.PricingAuthoritative
)

var (
	ErrSubmitInFlight    = service.ErrSubmitInFlight
	ErrStockConflict     = service.ErrStockConflict
	ErrNotConfirmed      = service.ErrNotConfirmed
	ErrFeeDeltaPending   = service.ErrFeeDeltaPending
	ErrDuplicateSubmit   = service.ErrDuplicateSubmit
	ErrNoPendingCheckout = service.ErrNoPendingCheckout
)

type Module struct {
	Svc *Service
	Hdl *Handler
}

func InitModule(cache ecache.Cache,
	cartModule *cart.Module,
	shippingModule *shipping.Module,
	geoModule *geo.Module,
	orderModule *order.Module) *Module {
	deps := service.Deps{
		Quotes:   service.NewQuoteClient(shippingModule.Svc),
		Previews: service.NewPreviewClient(orderModule.Svc),
		Geo:      service.NewGeocoder(geoModule.Svc),
		Orders:   service.NewOrderClient(orderModule.Svc, cache),
		Cart:     service.NewCartClient(cartModule.Svc),
		Pending:  service.NewPendingStore(cache),
	}
	svc := service.NewService(deps, service.Config{})
	return &Module{
		Svc: svc,
		Hdl: web.NewHandler(svc),
	}
}
