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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"

	"github.com/lapviet/lapstore/internal/shipping/internal/domain"
	"github.com/lapviet/lapstore/internal/shipping/internal/service"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/shipping")
	g.POST("/provinces", ginx.W(h.Provinces))
	g.POST("/wards", ginx.B[WardsReq](h.Wards))
	g.POST("/quote", ginx.B[QuoteReq](h.Quote))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Provinces(ctx *ginx.Context) (ginx.Result, error) {
	provinces, err := h.svc.Provinces(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ProvincesResp{
			Provinces: slice.Map(provinces, func(idx int, src domain.Province) Province {
				return Province{
					ID:           src.ID,
					Name:         src.Name,
					FreeShipping: src.FreeShipping,
				}
			}),
		},
	}, nil
}

func (h *Handler) Wards(ctx *ginx.Context, req WardsReq) (ginx.Result, error) {
	wards, err := h.svc.Wards(ctx.Request.Context(), req.ProvinceID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: WardsResp{
			Wards: slice.Map(wards, func(idx int, src domain.Ward) Ward {
				return Ward{ID: src.ID, Name: src.Name}
			}),
		},
	}, nil
}

func (h *Handler) Quote(ctx *ginx.Context, req QuoteReq) (ginx.Result, error) {
	quote, err := h.svc.Quote(ctx.Request.Context(), req.ProvinceID, req.WardID, req.Subtotal)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: QuoteResp{
			Fee:    quote.Fee,
			Reason: string(quote.Reason),
		},
	}, nil
}
