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

	"github.com/lapviet/lapstore/internal/checkout/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	checkout := server.Group("/checkout")
	checkout.POST("/return", ginx.BS[GatewayReturnReq](h.GatewayReturn))
	checkout.POST("/resume", ginx.S(h.Resume))
	checkout.POST("/address/prepare", ginx.BS[PrepareAddressChangeReq](h.PrepareAddressChange))
	checkout.POST("/address/commit", ginx.BS[CommitAddressChangeReq](h.CommitAddressChange))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// GatewayReturn 网关回跳。支付成功才做被推迟的购物车清理
func (h *Handler) GatewayReturn(ctx *ginx.Context, req GatewayReturnReq, sess session.Session) (ginx.Result, error) {
	sn, err := h.svc.HandleGatewayReturn(ctx, sess.Claims().Uid, req.Success)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: GatewayReturnResp{OrderSN: sn}}, nil
}

// Resume 登录恢复时触碰一次结算断点, 过期的会被顺手清掉
func (h *Handler) Resume(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	h.svc.ResumeOnAuth(ctx, sess.Claims().Uid)
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) PrepareAddressChange(ctx *ginx.Context, req PrepareAddressChangeReq, sess session.Session) (ginx.Result, error) {
	proposal, err := h.svc.PrepareAddressChange(ctx, sess.Claims().Uid, req.OrderSN, req.Address.toInput())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newChangeProposal(proposal)}, nil
}

func (h *Handler) CommitAddressChange(ctx *ginx.Context, req CommitAddressChangeReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CommitAddressChange(ctx, sess.Claims().Uid, req.Proposal.toDomain(), req.Confirmed)
	switch {
	case errors.Is(err, service.ErrFeeDeltaPending):
		return feeDeltaPendingResult, nil
	case err != nil:
		return systemErrorResult, err
	default:
		return ginx.Result{Msg: "OK"}, nil
	}
}
