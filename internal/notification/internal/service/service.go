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
	"fmt"
	"strconv"

	"github.com/lapviet/lapstore/internal/email"
	"github.com/lapviet/lapstore/internal/user"
)

//go:generate mockgen -source=./service.go -package=svcmocks -destination=mocks/notification.mock.go Service
type Service interface {
	SendOrderConfirmation(ctx context.Context, orderSN string, uid, total int64, paymentMethod string) error
}

type service struct {
	userSvc  user.Service
	emailSvc email.Service
}

func NewService(userSvc user.Service, emailSvc email.Service) Service {
	return &service{
		userSvc:  userSvc,
		emailSvc: emailSvc,
	}
}

func (s *service) SendOrderConfirmation(ctx context.Context, orderSN string, uid, total int64, paymentMethod string) error {
	u, err := s.userSvc.Profile(ctx, uid)
	if err != nil {
		return fmt.Errorf("查找下单用户失败: %w", err)
	}
	if u.Email == "" {
		return nil
	}
	method := "Thanh toán khi nhận hàng (COD)"
	if paymentMethod == "VNPAY" {
		method = "VNPAY"
	}
	subject := fmt.Sprintf("Xác nhận đơn hàng %s", orderSN)
	body := fmt.Sprintf(`<p>Xin chào %s,</p>
<p>Cảm ơn bạn đã đặt hàng tại LapStore.</p>
<p>Mã đơn hàng: <strong>%s</strong><br>
Tổng thanh toán: <strong>%s</strong><br>
Hình thức thanh toán: %s</p>
<p>Chúng tôi sẽ thông báo khi đơn hàng được giao cho đơn vị vận chuyển.</p>`,
		u.Name, orderSN, FormatVND(total), method)
	if err := s.emailSvc.Send(ctx, subject, u.Email, []byte(body)); err != nil {
		return fmt.Errorf("发送订单确认邮件失败: %w", err)
	}
	return nil
}

// FormatVND 千分位用点号, 越南盾的惯用写法
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, ch := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}
	if neg {
		return "-" + string(out) + " ₫"
	}
	return string(out) + " ₫"
}
