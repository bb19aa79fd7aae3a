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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapviet/lapstore/internal/user/internal/domain"
	"github.com/lapviet/lapstore/internal/user/internal/repository"
)

var (
	ErrUserDuplicate = repository.ErrUserDuplicate
	// ErrInvalidEmailOrPassword 邮箱不存在和密码不对给同一个错误, 不泄露哪个错了
	ErrInvalidEmailOrPassword = errors.New("邮箱或密码不正确")
)

//go:generate mockgen -source=./user.go -package=svcmocks -destination=mocks/user.mock.go UserService
type UserService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Profile(ctx context.Context, id int64) (domain.User, error)
	// UpdateNonSensitiveInfo 更新非敏感数据, 邮箱和密码走不了这里
	UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (svc *userService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("生成密码散列失败: %w", err)
	}
	user.SN = shortuuid.New()
	user.Password = string(hash)
	id, err := svc.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	user.ID = id
	user.Password = ""
	return user, nil
}

func (svc *userService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := svc.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, ErrInvalidEmailOrPassword
	}
	if err != nil {
		return domain.User{}, err
	}
	if er := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); er != nil {
		return domain.User{}, ErrInvalidEmailOrPassword
	}
	user.Password = ""
	return user, nil
}

func (svc *userService) Profile(ctx context.Context, id int64) (domain.User, error) {
	return svc.repo.FindById(ctx, id)
}

func (svc *userService) UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error {
	user.SN = ""
	user.Email = ""
	user.Password = ""
	return svc.repo.Update(ctx, user)
}
