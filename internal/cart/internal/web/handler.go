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
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"

	"github.com/lapviet/lapstore/internal/cart/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/cart")
	g.POST("/add", ginx.BS[AddItemReq](h.AddItem))
	g.POST("/quantity", ginx.BS[SetQuantityReq](h.SetQuantity))
	g.POST("/remove", ginx.BS[RemoveItemsReq](h.RemoveItems))
	g.POST("/clear", ginx.S(h.Clear))
	g.POST("/list", ginx.S(h.RetrieveCart))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) AddItem(ctx *ginx.Context, req AddItemReq, sess session.Session) (ginx.Result, error) {
	itemID, err := h.svc.AddItem(ctx.Request.Context(), sess.Claims().Uid, req.VariationID, req.Quantity)
	if errors.Is(err, service.ErrInvalidQuantity) {
		return invalidQuantityResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: AddItemResp{ItemID: itemID},
	}, nil
}

func (h *Handler) SetQuantity(ctx *ginx.Context, req SetQuantityReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.SetQuantity(ctx.Request.Context(), sess.Claims().Uid, req.ItemID, req.Quantity)
	if errors.Is(err, service.ErrInvalidQuantity) {
		return invalidQuantityResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) RemoveItems(ctx *ginx.Context, req RemoveItemsReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.RemoveItems(ctx.Request.Context(), sess.Claims().Uid, req.ItemIDs)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) Clear(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	err := h.svc.Clear(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) RetrieveCart(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.RetrieveCart(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newCartResp(cart),
	}, nil
}
