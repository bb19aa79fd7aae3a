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

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"golang.org/x/sync/errgroup"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/order/internal/repository/dao"
)

var ErrOrderNotFound = dao.ErrOrderNotFound

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	FindBySNAndUID(ctx context.Context, sn string, uid int64) (domain.Order, error)
	List(ctx context.Context, uid int64, status domain.Status, offset, limit int) ([]domain.Order, int64, error)
	ListAll(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, sn string, status domain.Status) error
	// MarkPaid 返回推进的行数, 零表示订单已不在待支付
	MarkPaid(ctx context.Context, sn string, paidAt int64) (int64, error)
	UpdateStatusAndDeadline(ctx context.Context, sn string, method string, status domain.Status, deadline int64) error
	CloseOrder(ctx context.Context, sn string, status domain.Status) error
	UpdateAddressAndFee(ctx context.Context, order domain.Order) error
	FindExpiredAwaiting(ctx context.Context, deadline int64, limit int) ([]domain.Order, error)
	WithReleaseLock(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.CreateOrder(ctx, o.toOrderEntity(order), o.toItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, items, err := o.d.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) FindBySNAndUID(ctx context.Context, sn string, uid int64) (domain.Order, error) {
	order, items, err := o.d.FindBySNAndUID(ctx, sn, uid)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("通过订单序列号及用户ID查找订单失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) List(ctx context.Context, uid int64, status domain.Status, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		total int64
		os    []dao.Order
	)
	eg.Go(func() error {
		var err error
		total, err = o.d.CountByUID(ctx, uid, status.String())
		return err
	})
	eg.Go(func() error {
		var err error
		os, err = o.d.FindByUID(ctx, uid, status.String(), offset, limit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	res, err := o.attachItems(ctx, os)
	return res, total, err
}

func (o *orderRepository) ListAll(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		total int64
		os    []dao.Order
	)
	eg.Go(func() error {
		var err error
		total, err = o.d.CountAll(ctx, status.String())
		return err
	})
	eg.Go(func() error {
		var err error
		os, err = o.d.FindAll(ctx, status.String(), offset, limit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	res, err := o.attachItems(ctx, os)
	return res, total, err
}

// attachItems 一次批量查出所有条目, 避免按订单逐条回表
func (o *orderRepository) attachItems(ctx context.Context, os []dao.Order) ([]domain.Order, error) {
	if len(os) == 0 {
		return []domain.Order{}, nil
	}
	itemMap, err := o.d.FindItemsByOrderIDs(ctx, slice.Map(os, func(idx int, src dao.Order) int64 {
		return src.Id
	}))
	if err != nil {
		return nil, fmt.Errorf("批量查找订单条目失败: %w", err)
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, itemMap[src.Id])
	}), nil
}

func (o *orderRepository) UpdateStatus(ctx context.Context, sn string, status domain.Status) error {
	return o.d.UpdateStatus(ctx, sn, status.String())
}

func (o *orderRepository) MarkPaid(ctx context.Context, sn string, paidAt int64) (int64, error) {
	return o.d.MarkPaid(ctx, sn, paidAt)
}

func (o *orderRepository) UpdateStatusAndDeadline(ctx context.Context, sn string, method string, status domain.Status, deadline int64) error {
	return o.d.UpdateMethodStatusAndDeadline(ctx, sn, method, status.String(), deadline)
}

func (o *orderRepository) CloseOrder(ctx context.Context, sn string, status domain.Status) error {
	return o.d.CloseAndClearDeadline(ctx, sn, status.String())
}

func (o *orderRepository) UpdateAddressAndFee(ctx context.Context, order domain.Order) error {
	return o.d.UpdateAddressAndFee(ctx, order.SN, o.toOrderEntity(order))
}

func (o *orderRepository) FindExpiredAwaiting(ctx context.Context, deadline int64, limit int) ([]domain.Order, error) {
	os, err := o.d.FindExpiredAwaiting(ctx, deadline, limit)
	if err != nil {
		return nil, err
	}
	return o.attachItems(ctx, os)
}

func (o *orderRepository) WithReleaseLock(ctx context.Context, fn func(ctx context.Context) error) error {
	return o.d.WithReleaseLock(ctx, fn)
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:               order.ID,
		SN:               order.SN,
		Uid:              order.UID,
		Subtotal:         order.Subtotal,
		ShippingFee:      order.ShippingFee,
		Total:            order.Total,
		PaymentMethod:    order.PaymentMethod,
		Note:             order.Note,
		ProvinceID:       order.Address.ProvinceID,
		ProvinceName:     order.Address.ProvinceName,
		WardID:           order.Address.WardID,
		WardName:         order.Address.WardName,
		Street:           order.Address.Street,
		ReceiverName:     order.Address.ReceiverName,
		Phone:            order.Address.Phone,
		Lat:              order.Address.Lat,
		Lng:              order.Address.Lng,
		Status:           order.Status.String(),
		ReserveExpiresAt: order.ReserveExpiresAt,
		PaidAt:           order.PaidAt,
	}
}

func (o *orderRepository) toItemEntities(items []domain.Item) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.Item) dao.OrderItem {
		return dao.OrderItem{
			VariationID: src.VariationID,
			Name:        src.Name,
			Image:       src.Image,
			Price:       src.Price,
			RealPrice:   src.RealPrice,
			Quantity:    src.Quantity,
			Subtotal:    src.Subtotal,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:  order.Id,
		SN:  order.SN,
		UID: order.Uid,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.Item {
			return domain.Item{
				VariationID: src.VariationID,
				Name:        src.Name,
				Image:       src.Image,
				Price:       src.Price,
				RealPrice:   src.RealPrice,
				Quantity:    src.Quantity,
				Subtotal:    src.Subtotal,
			}
		}),
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Note:          order.Note,
		Address: domain.Address{
			ProvinceID:   order.ProvinceID,
			ProvinceName: order.ProvinceName,
			WardID:       order.WardID,
			WardName:     order.WardName,
			Street:       order.Street,
			ReceiverName: order.ReceiverName,
			Phone:        order.Phone,
			Lat:          order.Lat,
			Lng:          order.Lng,
		},
		Status:           domain.Status(order.Status),
		ReserveExpiresAt: order.ReserveExpiresAt,
		PaidAt:           order.PaidAt,
		Ctime:            order.Ctime,
		Utime:            order.Utime,
	}
}
