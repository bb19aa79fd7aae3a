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

	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

// Service 结算会话工厂和次级流程(网关回跳、改址运费差确认)
type Service struct {
	deps   Deps
	cfg    Config
	logger *elog.Component
}

func NewService(deps Deps, cfg Config) *Service {
	return &Service{deps: deps, cfg: cfg, logger: elog.DefaultLogger}
}

// StartSession 进入结算页, 返回的Session是BFF进程内的交互引擎:
// 前端每个输入动作(改省坊、改数量、放图钉)由BFF映射成一次Session
// 方法调用, 防抖、重算和提交都发生在服务端内存里, 不走HTTP路由。
// 无论什么模式都读一次购物车快照, 立即购买的条目在快照里找不到时
// 按最小信息展示
func (s *Service) StartSession(ctx context.Context, uid int64, intent domain.Intent) (*Session, error) {
	lines, err := s.deps.Cart.Lines(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("读取购物车快照失败: %w", err)
	}
	return NewSession(uid, intent, lines, s.deps, s.cfg), nil
}

// HandleGatewayReturn 网关回跳。支付成功才执行被推迟的购物车清理,
// 无论成败都清掉断点
func (s *Service) HandleGatewayReturn(ctx context.Context, uid int64, success bool) (string, error) {
	pending, err := s.deps.Pending.Load(ctx, uid)
	if errors.Is(err, ErrNoPendingCheckout) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer func() {
		if er := s.deps.Pending.Clear(ctx, uid); er != nil {
			s.logger.Warn("清理结算断点失败", elog.Int64("uid", uid), elog.FieldErr(er))
		}
	}()
	if success && len(pending.CartItemIDs) > 0 {
		if er := s.deps.Cart.RemoveItems(ctx, uid, pending.CartItemIDs); er != nil {
			s.logger.Warn("回跳后清理购物车失败",
				elog.String("orderSN", pending.OrderSN), elog.FieldErr(er))
		}
	}
	return pending.OrderSN, nil
}

// ResumeOnAuth 登录恢复时触碰一次断点, 过期的会被顺手清掉
func (s *Service) ResumeOnAuth(ctx context.Context, uid int64) {
	if _, err := s.deps.Pending.Load(ctx, uid); err != nil &&
		!errors.Is(err, ErrNoPendingCheckout) {
		s.logger.Warn("恢复结算断点失败", elog.Int64("uid", uid), elog.FieldErr(err))
	}
}

// ChangeProposal 改址提案。Delta是签名的运费差, 正数补收负数退差,
// 非零必须经用户确认后才能提交
type ChangeProposal struct {
	OrderSN string
	Address AddressInput
	OldFee  int64
	NewFee  int64
	Delta   int64
}

func (p ChangeProposal) NeedsConfirmation() bool {
	return p.Delta != 0
}

// PrepareAddressChange 改址第一步: 先重新报价, 算出运费差
func (s *Service) PrepareAddressChange(ctx context.Context, uid int64, sn string, address AddressInput) (ChangeProposal, error) {
	info, err := s.deps.Orders.Find(ctx, uid, sn)
	if err != nil {
		return ChangeProposal{}, fmt.Errorf("查找订单失败: %w", err)
	}
	quote, err := s.deps.Quotes.Quote(ctx, address.ProvinceID, address.WardID, info.Subtotal)
	if err != nil {
		return ChangeProposal{}, fmt.Errorf("重新报价失败: %w", err)
	}
	return ChangeProposal{
		OrderSN: sn,
		Address: address,
		OldFee:  info.ShippingFee,
		NewFee:  quote.Fee,
		Delta:   quote.Fee - info.ShippingFee,
	}, nil
}

// CommitAddressChange 改址第二步: 运费有差额时必须带着确认标记进来,
// 否则拒绝提交。拒绝不改变任何已持久化状态
func (s *Service) CommitAddressChange(ctx context.Context, uid int64, proposal ChangeProposal, confirmed bool) error {
	if proposal.NeedsConfirmation() && !confirmed {
		return fmt.Errorf("%w: delta=%d", ErrFeeDeltaPending, proposal.Delta)
	}
	return s.deps.Orders.UpdateAddress(ctx, uid, proposal.OrderSN, proposal.Address)
}
