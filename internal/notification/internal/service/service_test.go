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

	"github.com/lapviet/lapstore/internal/user"
)

type stubUserService struct {
	user.Service
	profile user.User
}

func (s *stubUserService) Profile(_ context.Context, _ int64) (user.User, error) {
	return s.profile, nil
}

type capturingEmail struct {
	subject string
	to      string
	body    string
	sent    int
}

func (c *capturingEmail) Send(_ context.Context, subject, to string, content []byte) error {
	c.subject, c.to, c.body = subject, to, string(content)
	c.sent++
	return nil
}

func TestService_SendOrderConfirmation(t *testing.T) {
	t.Parallel()
	mail := &capturingEmail{}
	svc := NewService(&stubUserService{
		profile: user.User{ID: 7, Email: "a@example.com", Name: "Nguyen Van A"},
	}, mail)

	err := svc.SendOrderConfirmation(context.Background(), "ORD-ABC123", 7, 25_030_000, "VNPAY")
	require.NoError(t, err)
	assert.Equal(t, 1, mail.sent)
	assert.Equal(t, "a@example.com", mail.to)
	assert.Contains(t, mail.subject, "ORD-ABC123")
	assert.Contains(t, mail.body, "25.030.000 ₫")
	assert.Contains(t, mail.body, "VNPAY")
}

func TestService_SendOrderConfirmation_NoEmail(t *testing.T) {
	t.Parallel()
	mail := &capturingEmail{}
	svc := NewService(&stubUserService{profile: user.User{ID: 7}}, mail)

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), "ORD-ABC123", 7, 1000, "COD"))
	assert.Zero(t, mail.sent)
}

func TestFormatVND(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "个位数", amount: 5, want: "5 ₫"},
		{name: "刚好三位", amount: 999, want: "999 ₫"},
		{name: "百万级", amount: 25_030_000, want: "25.030.000 ₫"},
		{name: "零", amount: 0, want: "0 ₫"},
		{name: "负数退款", amount: -30_000, want: "-30.000 ₫"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FormatVND(tc.amount))
		})
	}
}
