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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapviet/lapstore/internal/user/internal/domain"
	"github.com/lapviet/lapstore/internal/user/internal/repository"
	repomocks "github.com/lapviet/lapstore/internal/user/internal/repository/mocks"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)
	var stored domain.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, u domain.User) (int64, error) {
			stored = u
			return int64(7), nil
		})
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), domain.User{
		Email:    "a@example.com",
		Password: "hello#world123",
		Name:     "Nguyen Van A",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NotEmpty(t, user.SN)
	// 返回值不带密码, 落库的是散列而不是明文
	assert.Empty(t, user.Password)
	assert.NotEqual(t, "hello#world123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hello#world123")))
}

func TestUserService_Register_Duplicate(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), repository.ErrUserDuplicate)
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), domain.User{
		Email:    "a@example.com",
		Password: "hello#world123",
	})
	assert.ErrorIs(t, err, ErrUserDuplicate)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("hello#world123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := domain.User{ID: 7, Email: "a@example.com", Name: "Nguyen Van A", Password: string(hash)}

	testCases := []struct {
		name     string
		mock     func(ctrl *gomock.Controller) repository.UserRepository
		email    string
		password string
		wantErr  error
	}{
		{
			name: "登录成功",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByEmail(gomock.Any(), "a@example.com").Return(stored, nil)
				return repo
			},
			email:    "a@example.com",
			password: "hello#world123",
		},
		{
			name: "密码不对",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByEmail(gomock.Any(), "a@example.com").Return(stored, nil)
				return repo
			},
			email:    "a@example.com",
			password: "wrong-password",
			wantErr:  ErrInvalidEmailOrPassword,
		},
		{
			name: "邮箱不存在_同一个错误不泄露原因",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").
					Return(domain.User{}, repository.ErrUserNotFound)
				return repo
			},
			email:    "nobody@example.com",
			password: "hello#world123",
			wantErr:  ErrInvalidEmailOrPassword,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := NewUserService(tc.mock(ctrl))
			user, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), user.ID)
			assert.Empty(t, user.Password)
		})
	}
}
