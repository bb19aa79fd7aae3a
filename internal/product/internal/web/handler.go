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

	"github.com/lapviet/lapstore/internal/product/internal/domain"
	"github.com/lapviet/lapstore/internal/product/internal/service"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/detail", ginx.B[SNReq](h.RetrieveProductDetail))
	g.POST("/list", ginx.B[ListReq](h.ListProducts))
	g.POST("/search", ginx.B[SearchReq](h.SearchProducts))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) RetrieveProductDetail(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	p, err := h.svc.FindBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newProduct(p),
	}, nil
}

func (h *Handler) ListProducts(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	count, list, err := h.svc.List(ctx.Request.Context(), req.Category, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: count,
			Products: slice.Map(list, func(idx int, src domain.Product) Product {
				return newProduct(src)
			}),
		},
	}, nil
}

func (h *Handler) SearchProducts(ctx *ginx.Context, req SearchReq) (ginx.Result, error) {
	list, err := h.svc.Search(ctx.Request.Context(), req.Keywords, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: SearchResp{
			Products: slice.Map(list, func(idx int, src domain.Product) Product {
				return newProduct(src)
			}),
		},
	}, nil
}
