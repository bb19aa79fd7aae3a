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
	"strconv"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"

	"github.com/lapviet/lapstore/internal/user/internal/domain"
	"github.com/lapviet/lapstore/internal/user/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.UserService
}

func NewHandler(svc service.UserService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.POST("/register", ginx.B[RegisterReq](h.Register))
	users.POST("/login", ginx.B[LoginReq](h.Login))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.GET("/profile", ginx.S(h.Profile))
	users.POST("/profile", ginx.BS[EditReq](h.Edit))
}

func (h *Handler) Register(ctx *ginx.Context, req RegisterReq) (ginx.Result, error) {
	user, err := h.svc.Register(ctx, domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if errors.Is(err, service.ErrUserDuplicate) {
		return userDuplicateResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return h.newSession(ctx, user)
}

func (h *Handler) Login(ctx *ginx.Context, req LoginReq) (ginx.Result, error) {
	user, err := h.svc.Login(ctx, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidEmailOrPassword) {
		return invalidEmailOrPasswordResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return h.newSession(ctx, user)
}

func (h *Handler) newSession(ctx *ginx.Context, user domain.User) (ginx.Result, error) {
	_, err := session.NewSessionBuilder(ctx, user.ID).
		SetJwtData(map[string]string{
			"admin": strconv.FormatBool(user.IsAdmin),
		}).Build()
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newProfile(user)}, nil
}

func (h *Handler) Profile(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	user, err := h.svc.Profile(ctx, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newProfile(user)}, nil
}

func (h *Handler) Edit(ctx *ginx.Context, req EditReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdateNonSensitiveInfo(ctx, domain.User{
		ID:     sess.Claims().Uid,
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func newProfile(user domain.User) Profile {
	return Profile{
		ID:      user.ID,
		SN:      user.SN,
		Email:   user.Email,
		Name:    user.Name,
		Phone:   user.Phone,
		Avatar:  user.Avatar,
		IsAdmin: user.IsAdmin,
	}
}
