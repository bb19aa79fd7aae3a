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
	"github.com/gin-gonic/gin"

	"github.com/lapviet/lapstore/internal/geo/internal/errs"
	"github.com/lapviet/lapstore/internal/geo/internal/service"
)

type ForwardReq struct {
	Query string `json:"query"`
}

type ForwardResp struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	noMatchResult = ginx.Result{
		Code: errs.NoMatch.Code,
		Msg:  errs.NoMatch.Msg,
	}
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/geo")
	g.POST("/forward", ginx.B[ForwardReq](h.Forward))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Forward(ctx *ginx.Context, req ForwardReq) (ginx.Result, error) {
	loc, err := h.svc.Forward(ctx.Request.Context(), req.Query)
	if errors.Is(err, service.ErrNoMatch) {
		return noMatchResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ForwardResp{
			Lat:         loc.Lat,
			Lng:         loc.Lng,
			DisplayName: loc.DisplayName,
		},
	}, nil
}
