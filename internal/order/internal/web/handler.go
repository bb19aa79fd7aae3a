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
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/order/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc    service.Service
	cache  ecache.Cache
	logger *elog.Component
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache, logger: elog.DefaultLogger}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/preview", ginx.B[PreviewReq](h.Preview))
	g.POST("/create", ginx.BS[CreateOrderReq](h.CreateOrder))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[OrderSNReq](h.Detail))
	g.POST("/cancel", ginx.BS[OrderSNReq](h.Cancel))
	g.POST("/address", ginx.BS[UpdateAddressReq](h.UpdateAddress))
	g.POST("/method", ginx.BS[UpdatePaymentMethodReq](h.UpdatePaymentMethod))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) Preview(ctx *ginx.Context, req PreviewReq) (ginx.Result, error) {
	preview, err := h.svc.Preview(ctx.Request.Context(), toDomainItems(req.Items), req.ProvinceID, req.WardID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: PreviewResp{
			Items:          newItems(preview.Items),
			Subtotal:       preview.Subtotal,
			ShippingFee:    preview.ShippingFee,
			ShippingReason: preview.ShippingReason,
			Total:          preview.Total,
			StockWarnings:  newStockWarnings(preview.StockWarnings),
		},
	}, nil
}

func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	if err := h.checkRequestID(ctx.Request.Context(), req.RequestID); err != nil {
		return duplicateRequestResult, err
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), service.CreateOrderCmd{
		UID:           sess.Claims().Uid,
		Items:         toDomainItems(req.Items),
		Address:       toDomainAddress(req.Address),
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		BankCode:      req.BankCode,
		ClientIP:      ctx.ClientIP(),
	})
	if err != nil {
		// 下单没成功就归还占位, 同一个请求ID还能重试
		h.releaseRequestID(ctx.Request.Context(), req.RequestID)
	}
	switch {
	case errors.Is(err, service.ErrStockNotEnough):
		return stockNotEnoughResult, err
	case errors.Is(err, service.ErrInvalidAddress):
		return invalidAddressResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: CreateOrderResp{
			OrderSN:    order.SN,
			PaymentURL: order.PaymentURL,
		},
	}, nil
}

// checkRequestID 用缓存给请求ID占位, 同一个请求ID只允许下单一次
func (h *Handler) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := h.createOrderRequestKey(requestID)
	val := h.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("重复请求: %s", requestID)
	}
	if err := h.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (h *Handler) releaseRequestID(ctx context.Context, requestID string) {
	_, err := h.cache.Delete(ctx, h.createOrderRequestKey(requestID))
	if err != nil {
		h.logger.Error("归还请求ID占位失败",
			elog.String("requestID", requestID), elog.FieldErr(err))
	}
}

func (h *Handler) createOrderRequestKey(requestID string) string {
	return fmt.Sprintf("order:create:%s", requestID)
}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	orders, total, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid, domain.Status(req.Status), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: func() []Order {
				res := make([]Order, 0, len(orders))
				for _, order := range orders {
					res = append(res, newOrder(order))
				}
				return res
			}(),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindByUIDAndSN(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if errors.Is(err, service.ErrOrderNotFound) {
		return orderNotFoundResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newOrder(order),
	}, nil
}

func (h *Handler) Cancel(ctx *ginx.Context, req OrderSNReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Cancel(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, err
	case errors.Is(err, service.ErrCancelNotAllowed):
		return cancelNotAllowedResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) UpdateAddress(ctx *ginx.Context, req UpdateAddressReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.UpdateShippingAddress(ctx.Request.Context(), sess.Claims().Uid, req.SN, toDomainAddress(req.Address))
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, err
	case errors.Is(err, service.ErrInvalidAddress):
		return invalidAddressResult, err
	case errors.Is(err, service.ErrAddressChangeDeny):
		return addressChangeDenyResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newOrder(order),
	}, nil
}

func (h *Handler) UpdatePaymentMethod(ctx *ginx.Context, req UpdatePaymentMethodReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdatePaymentMethod(ctx.Request.Context(), sess.Claims().Uid, req.SN, req.PaymentMethod, req.BankCode)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}
