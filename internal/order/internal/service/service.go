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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/order/internal/event"
	"github.com/lapviet/lapstore/internal/order/internal/repository"
	"github.com/lapviet/lapstore/internal/payment"
	"github.com/lapviet/lapstore/internal/pkg/database"
	"github.com/lapviet/lapstore/internal/pkg/sequencenumber"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
)

var (
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrStockNotEnough    = product.ErrStockNotEnough
	ErrInvalidMethod     = payment.ErrInvalidMethod
	ErrInvalidAddress    = errors.New("收货地址不完整")
	ErrVariationNotFound = errors.New("商品SKU不存在或已下架")
	ErrCancelNotAllowed  = errors.New("当前状态不允许取消")
	ErrAddressChangeDeny = errors.New("支付完成后不能变更影响运费的地址")
)

// reserveTTL 在线支付订单的库存预占时长, 超时未支付由释放任务回收
const reserveTTL = 15 * time.Minute

// CreateOrderCmd 下单命令。Items只需要VariationID和Quantity,
// 价格一律以服务端当前价为准
type CreateOrderCmd struct {
	UID           int64
	Items         []domain.Item
	Address       domain.Address
	Note          string
	PaymentMethod string
	BankCode      string
	// ClientIP 透传给支付网关, VNPAY要求带上买家IP
	ClientIP string
}

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go -typed Service
type Service interface {
	// Preview 服务端报价, 下单前端展示的金额必须以此为准
	Preview(ctx context.Context, items []domain.Item, provinceID, wardID int64) (domain.Preview, error)
	CreateOrder(ctx context.Context, cmd CreateOrderCmd) (domain.Order, error)
	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	List(ctx context.Context, uid int64, status domain.Status, offset, limit int) ([]domain.Order, int64, error)
	ListAll(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, sn string, status domain.Status) error
	Cancel(ctx context.Context, uid int64, sn string) error
	UpdateShippingAddress(ctx context.Context, uid int64, sn string, address domain.Address) (domain.Order, error)
	UpdatePaymentMethod(ctx context.Context, uid int64, sn string, method, bankCode string) error
	// MarkPaidBySN 支付成功后推进订单, 清掉库存预占期限
	MarkPaidBySN(ctx context.Context, sn string) error
	// FailBySN 支付失败后关闭订单并归还库存
	FailBySN(ctx context.Context, sn string) error
	// ReleaseExpiredReservations 回收超时未支付订单的预占库存
	ReleaseExpiredReservations(ctx context.Context, limit int) error
}

func NewService(db *egorm.Component,
	repo repository.OrderRepository,
	productSvc product.Service,
	shippingSvc shipping.Service,
	paymentSvc payment.Service,
	snGenerator *sequencenumber.Generator,
	producer event.OrderEventProducer) Service {
	return &service{
		db:          db,
		repo:        repo,
		productSvc:  productSvc,
		shippingSvc: shippingSvc,
		paymentSvc:  paymentSvc,
		snGenerator: snGenerator,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	db          *egorm.Component
	repo        repository.OrderRepository
	productSvc  product.Service
	shippingSvc shipping.Service
	paymentSvc  payment.Service
	snGenerator *sequencenumber.Generator
	producer    event.OrderEventProducer
	logger      *elog.Component
}

func (s *service) Preview(ctx context.Context, items []domain.Item, provinceID, wardID int64) (domain.Preview, error) {
	priced, subtotal, variations, err := s.priceItems(ctx, items)
	if err != nil {
		return domain.Preview{}, err
	}
	quote, err := s.shippingSvc.Quote(ctx, provinceID, wardID, subtotal)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("计算运费失败: %w", err)
	}
	// 超库存条目只预警不报错, 下单事务的行锁扣减才是最终裁决
	var warnings []domain.StockWarning
	for _, item := range priced {
		if v := variations[item.VariationID]; item.Quantity > v.Stock {
			warnings = append(warnings, domain.StockWarning{
				VariationID: item.VariationID,
				Requested:   item.Quantity,
				Available:   v.Stock,
			})
		}
	}
	return domain.Preview{
		Items:          priced,
		Subtotal:       subtotal,
		ShippingFee:    quote.Fee,
		ShippingReason: string(quote.Reason),
		Total:          subtotal + quote.Fee,
		StockWarnings:  warnings,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, cmd CreateOrderCmd) (domain.Order, error) {
	if !payment.ValidMethod(payment.Method(cmd.PaymentMethod), cmd.BankCode) {
		return domain.Order{}, fmt.Errorf("%w: method=%s bankCode=%s", ErrInvalidMethod, cmd.PaymentMethod, cmd.BankCode)
	}
	if err := validateAddress(cmd.Address); err != nil {
		return domain.Order{}, err
	}
	priced, subtotal, _, err := s.priceItems(ctx, cmd.Items)
	if err != nil {
		return domain.Order{}, err
	}
	quote, err := s.shippingSvc.Quote(ctx, cmd.Address.ProvinceID, cmd.Address.WardID, subtotal)
	if err != nil {
		return domain.Order{}, fmt.Errorf("计算运费失败: %w", err)
	}
	sn, err := s.snGenerator.Generate()
	if err != nil {
		return domain.Order{}, fmt.Errorf("生成订单号失败: %w", err)
	}

	order := domain.Order{
		SN:            sn,
		UID:           cmd.UID,
		Items:         priced,
		Subtotal:      subtotal,
		ShippingFee:   quote.Fee,
		Total:         subtotal + quote.Fee,
		PaymentMethod: cmd.PaymentMethod,
		Note:          cmd.Note,
		Address:       cmd.Address,
	}
	if cmd.PaymentMethod == string(payment.MethodVNPAY) {
		order.Status = domain.StatusAwaitingPayment
		order.ReserveExpiresAt = time.Now().Add(reserveTTL).UnixMilli()
	} else {
		// COD没有支付环节, 直接进入备货
		order.Status = domain.StatusProcessing
	}

	// 库存扣减、订单、支付记录和跳转链接在一个事务里一起成败,
	// 任何一步失败都不留下半成品
	reservations := toReservations(priced)
	err = database.Transaction(ctx, s.db, func(ctx context.Context) error {
		if er := s.productSvc.ReserveStock(ctx, reservations); er != nil {
			return fmt.Errorf("预占库存失败: %w", er)
		}
		var er error
		order, er = s.repo.CreateOrder(ctx, order)
		if er != nil {
			return fmt.Errorf("创建订单失败: %w", er)
		}
		_, er = s.paymentSvc.CreatePayment(ctx, payment.Payment{
			OrderID:  order.ID,
			OrderSN:  order.SN,
			UID:      order.UID,
			Method:   payment.Method(cmd.PaymentMethod),
			BankCode: cmd.BankCode,
			Amount:   order.Total,
		})
		if er != nil {
			return fmt.Errorf("创建支付记录失败: %w", er)
		}
		if order.PaymentMethod == string(payment.MethodVNPAY) {
			order.PaymentURL, er = s.paymentSvc.PaymentURL(ctx, order.SN, cmd.ClientIP)
			if er != nil {
				return fmt.Errorf("生成支付链接失败: %w", er)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	evt := event.OrderCreatedEvent{
		OrderSN:       order.SN,
		UID:           order.UID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
	}
	if er := s.producer.ProduceOrderCreatedEvent(ctx, evt); er != nil {
		s.logger.Error("发送订单创建事件失败",
			elog.String("sn", order.SN), elog.FieldErr(er))
	}
	return order, nil
}

func (s *service) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	return s.repo.FindBySNAndUID(ctx, sn, uid)
}

func (s *service) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, uid int64, status domain.Status, offset, limit int) ([]domain.Order, int64, error) {
	return s.repo.List(ctx, uid, status, offset, limit)
}

func (s *service) ListAll(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Order, int64, error) {
	return s.repo.ListAll(ctx, status, offset, limit)
}

func (s *service) UpdateStatus(ctx context.Context, sn string, status domain.Status) error {
	return s.repo.UpdateStatus(ctx, sn, status)
}

func (s *service) Cancel(ctx context.Context, uid int64, sn string) error {
	order, err := s.repo.FindBySNAndUID(ctx, sn, uid)
	if err != nil {
		return err
	}
	pmt, err := s.paymentSvc.FindByOrderSN(ctx, sn)
	if err != nil {
		return fmt.Errorf("查找支付记录失败: %w", err)
	}
	if !CanCancel(order, pmt) {
		return fmt.Errorf("%w: status=%s", ErrCancelNotAllowed, order.Status)
	}
	s.releaseStock(ctx, toReservations(order.Items))
	if err = s.repo.CloseOrder(ctx, sn, domain.StatusCancelled); err != nil {
		return fmt.Errorf("取消订单失败: %w", err)
	}
	if pmt.Status == payment.StatusCompleted {
		err = s.paymentSvc.MarkRefundedByOrderSN(ctx, sn)
	} else {
		err = s.paymentSvc.MarkFailedByOrderSN(ctx, sn)
	}
	if err != nil {
		s.logger.Error("同步支付状态失败",
			elog.String("sn", sn), elog.FieldErr(err))
	}
	return nil
}

// CanCancel 取消资格判定, 只放行三种组合:
// 在线支付未付款、货到付款备货中、在线支付已付款但尚未发货
func CanCancel(order domain.Order, pmt payment.Payment) bool {
	type tuple struct {
		method string
		status domain.Status
		pmt    payment.Status
	}
	t := tuple{method: order.PaymentMethod, status: order.Status, pmt: pmt.Status}
	switch t {
	case tuple{method: string(payment.MethodVNPAY), status: domain.StatusAwaitingPayment, pmt: payment.StatusPending},
		tuple{method: string(payment.MethodCOD), status: domain.StatusProcessing, pmt: payment.StatusPending},
		tuple{method: string(payment.MethodVNPAY), status: domain.StatusProcessing, pmt: payment.StatusCompleted}:
		return true
	default:
		return false
	}
}

func (s *service) UpdateShippingAddress(ctx context.Context, uid int64, sn string, address domain.Address) (domain.Order, error) {
	if err := validateAddress(address); err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.FindBySNAndUID(ctx, sn, uid)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status != domain.StatusAwaitingPayment && order.Status != domain.StatusProcessing {
		return domain.Order{}, fmt.Errorf("%w: status=%s", ErrCancelNotAllowed, order.Status)
	}
	quote, err := s.shippingSvc.Quote(ctx, address.ProvinceID, address.WardID, order.Subtotal)
	if err != nil {
		return domain.Order{}, fmt.Errorf("计算运费失败: %w", err)
	}
	pmt, err := s.paymentSvc.FindByOrderSN(ctx, sn)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找支付记录失败: %w", err)
	}
	if pmt.Status == payment.StatusCompleted && quote.Fee != order.ShippingFee {
		// 已收款金额无法追补或退差价
		return domain.Order{}, ErrAddressChangeDeny
	}

	order.Address = address
	order.ShippingFee = quote.Fee
	order.Total = order.Subtotal + quote.Fee
	if err = s.repo.UpdateAddressAndFee(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("更新收货地址失败: %w", err)
	}
	if pmt.Status == payment.StatusPending && pmt.Amount != order.Total {
		if err = s.paymentSvc.UpdateAmount(ctx, sn, order.Total); err != nil {
			return domain.Order{}, fmt.Errorf("同步支付金额失败: %w", err)
		}
	}
	return order, nil
}

func (s *service) UpdatePaymentMethod(ctx context.Context, uid int64, sn string, method, bankCode string) error {
	order, err := s.repo.FindBySNAndUID(ctx, sn, uid)
	if err != nil {
		return err
	}
	pmt, err := s.paymentSvc.UpdateMethod(ctx, sn, payment.Method(method), bankCode)
	if err != nil {
		return err
	}
	if order.PaymentMethod == string(pmt.Method) {
		return nil
	}
	// 切到VNPAY要重新进入待支付并重置预占期限,
	// 切到COD则直接进入备货
	if pmt.Method == payment.MethodVNPAY {
		return s.repo.UpdateStatusAndDeadline(ctx, sn, string(pmt.Method),
			domain.StatusAwaitingPayment, time.Now().Add(reserveTTL).UnixMilli())
	}
	return s.repo.UpdateStatusAndDeadline(ctx, sn, string(pmt.Method), domain.StatusProcessing, 0)
}

func (s *service) MarkPaidBySN(ctx context.Context, sn string) error {
	affected, err := s.repo.MarkPaid(ctx, sn, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	if affected == 0 {
		// 预占超时被取消后网关通知才到, 订单保持终态, 留痕待人工对账
		s.logger.Warn("支付成功但订单已不在待支付",
			elog.String("sn", sn))
	}
	return nil
}

func (s *service) FailBySN(ctx context.Context, sn string) error {
	order, err := s.repo.FindBySN(ctx, sn)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusAwaitingPayment {
		// 终态订单不再回滚, 支付事件可能重复投递
		return nil
	}
	s.releaseStock(ctx, toReservations(order.Items))
	return s.repo.CloseOrder(ctx, sn, domain.StatusFailed)
}

func (s *service) ReleaseExpiredReservations(ctx context.Context, limit int) error {
	return s.repo.WithReleaseLock(ctx, func(ctx context.Context) error {
		for {
			orders, err := s.repo.FindExpiredAwaiting(ctx, time.Now().UnixMilli(), limit)
			if err != nil {
				return fmt.Errorf("查找超时订单失败: %w", err)
			}
			for _, order := range orders {
				s.releaseStock(ctx, toReservations(order.Items))
				if er := s.repo.CloseOrder(ctx, order.SN, domain.StatusCancelled); er != nil {
					return fmt.Errorf("关闭超时订单失败: %w", er)
				}
				if er := s.paymentSvc.MarkFailedByOrderSN(ctx, order.SN); er != nil {
					s.logger.Error("同步支付状态失败",
						elog.String("sn", order.SN), elog.FieldErr(er))
				}
			}
			if len(orders) < limit {
				return nil
			}
		}
	})
}

// priceItems 以服务端当前价重算每个条目, 忽略前端传来的任何价格
func (s *service) priceItems(ctx context.Context, items []domain.Item) ([]domain.Item, int64, map[int64]product.Variation, error) {
	if len(items) == 0 {
		return nil, 0, nil, fmt.Errorf("%w: 订单条目为空", ErrVariationNotFound)
	}
	ids := slice.Map(items, func(idx int, src domain.Item) int64 {
		return src.VariationID
	})
	variations, err := s.productSvc.FindVariationsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("查找商品SKU失败: %w", err)
	}
	vm := make(map[int64]product.Variation, len(variations))
	for _, v := range variations {
		vm[v.ID] = v
	}
	res := make([]domain.Item, 0, len(items))
	var subtotal int64
	for _, item := range items {
		v, ok := vm[item.VariationID]
		if !ok {
			return nil, 0, nil, fmt.Errorf("%w: variation %d", ErrVariationNotFound, item.VariationID)
		}
		if item.Quantity <= 0 {
			return nil, 0, nil, fmt.Errorf("%w: variation %d 数量非法", ErrVariationNotFound, item.VariationID)
		}
		realPrice := v.SellingPrice()
		it := domain.Item{
			VariationID: v.ID,
			Name:        v.Name,
			Image:       v.Image,
			Price:       v.Price,
			RealPrice:   realPrice,
			Quantity:    item.Quantity,
			Subtotal:    realPrice * item.Quantity,
		}
		subtotal += it.Subtotal
		res = append(res, it)
	}
	return res, subtotal, vm, nil
}

func (s *service) releaseStock(ctx context.Context, reservations []product.StockReservation) {
	if err := s.productSvc.ReleaseStock(ctx, reservations); err != nil {
		s.logger.Error("归还库存失败", elog.FieldErr(err))
	}
}

func toReservations(items []domain.Item) []product.StockReservation {
	return slice.Map(items, func(idx int, src domain.Item) product.StockReservation {
		return product.StockReservation{
			VariationID: src.VariationID,
			Quantity:    src.Quantity,
		}
	})
}

func validateAddress(address domain.Address) error {
	if address.ProvinceID <= 0 || address.WardID <= 0 ||
		address.Street == "" || address.ReceiverName == "" || address.Phone == "" {
		return ErrInvalidAddress
	}
	return nil
}
