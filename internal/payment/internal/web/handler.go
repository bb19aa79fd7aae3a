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
	"net/http"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"

	"github.com/lapviet/lapstore/internal/payment/internal/service"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/payment")
	// 网关服务器对服务器通知, 无会话
	g.GET("/vnpay/ipn", h.HandleIPN)
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/payment")
	g.POST("/url", ginx.BS[PaymentURLReq](h.PaymentURL))
}

// HandleIPN 协议要求无论处理结果如何都返回200和确认结构
func (h *Handler) HandleIPN(ctx *gin.Context) {
	params := make(map[string]string)
	for k := range ctx.Request.URL.Query() {
		params[k] = ctx.Query(k)
	}
	resp := h.svc.HandleIPN(ctx.Request.Context(), params)
	ctx.JSON(http.StatusOK, resp)
}

func (h *Handler) PaymentURL(ctx *ginx.Context, req PaymentURLReq, _ session.Session) (ginx.Result, error) {
	u, err := h.svc.PaymentURL(ctx.Request.Context(), req.OrderSN, ctx.ClientIP())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: PaymentURLResp{URL: u},
	}, nil
}
