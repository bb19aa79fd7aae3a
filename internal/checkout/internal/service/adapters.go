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

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/cart"
	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
	"github.com/lapviet/lapstore/internal/geo"
	"github.com/lapviet/lapstore/internal/order"
	"github.com/lapviet/lapstore/internal/shipping"
)

var ErrDuplicateSubmit = errors.New("重复的下单请求")

type quoteAdapter struct {
	svc shipping.Service
}

func NewQuoteClient(svc shipping.Service) QuoteClient {
	return &quoteAdapter{svc: svc}
}

func (a *quoteAdapter) Quote(ctx context.Context, provinceID, wardID, subtotal int64) (domain.Quote, error) {
	quote, err := a.svc.Quote(ctx, provinceID, wardID, subtotal)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{Fee: quote.Fee, Reason: string(quote.Reason)}, nil
}

type previewAdapter struct {
	orderSvc order.Service
}

func NewPreviewClient(orderSvc order.Service) PreviewClient {
	return &previewAdapter{orderSvc: orderSvc}
}

func (a *previewAdapter) Preview(ctx context.Context, items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error) {
	preview, err := a.orderSvc.Preview(ctx, slice.Map(items, func(idx int, src domain.IntentItem) order.Item {
		return order.Item{VariationID: src.VariationID, Quantity: src.Quantity}
	}), provinceID, wardID)
	if err != nil {
		return domain.Preview{}, err
	}
	res := domain.Preview{
		Subtotal:       preview.Subtotal,
		ShippingFee:    preview.ShippingFee,
		ShippingReason: preview.ShippingReason,
		Total:          preview.Total,
		Items: slice.Map(preview.Items, func(idx int, src order.Item) domain.PreviewItem {
			return domain.PreviewItem{
				VariationID: src.VariationID,
				Name:        src.Name,
				Price:       src.Price,
				RealPrice:   src.RealPrice,
				Quantity:    src.Quantity,
				Subtotal:    src.Subtotal,
			}
		}),
		// 库存预警由报价方顺带给出, 提交前还会由下单事务兜底
		StockWarnings: slice.Map(preview.StockWarnings, func(idx int, src order.StockWarning) domain.StockWarning {
			return domain.StockWarning{
				VariationID: src.VariationID,
				Requested:   src.Requested,
				Available:   src.Available,
			}
		}),
	}
	return res, nil
}

type geoAdapter struct {
	svc geo.Service
}

func NewGeocoder(svc geo.Service) Geocoder {
	return &geoAdapter{svc: svc}
}

func (a *geoAdapter) Forward(ctx context.Context, query string) (domain.Point, error) {
	loc, err := a.svc.Forward(ctx, query)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

type cartAdapter struct {
	svc cart.Service
}

func NewCartClient(svc cart.Service) CartClient {
	return &cartAdapter{svc: svc}
}

func (a *cartAdapter) Lines(ctx context.Context, uid int64) ([]domain.CartLine, error) {
	c, err := a.svc.RetrieveCart(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(c.Items, func(idx int, src cart.Item) domain.CartLine {
		return domain.CartLine{
			ID:          src.ID,
			VariationID: src.VariationID,
			Name:        src.VariationName,
			Image:       src.Image,
			LivePrice:   src.LivePrice,
			Stock:       src.Stock,
		}
	}), nil
}

func (a *cartAdapter) RemoveItems(ctx context.Context, uid int64, itemIDs []int64) error {
	return a.svc.RemoveItems(ctx, uid, itemIDs)
}

type orderAdapter struct {
	orderSvc order.Service
	cache    ecache.Cache
	logger   *elog.Component
}

func NewOrderClient(orderSvc order.Service, cache ecache.Cache) OrderClient {
	return &orderAdapter{orderSvc: orderSvc, cache: cache, logger: elog.DefaultLogger}
}

func (a *orderAdapter) Create(ctx context.Context, cmd CreateCmd) (domain.SubmitResult, error) {
	if err := a.checkRequestID(ctx, cmd.RequestID); err != nil {
		return domain.SubmitResult{}, err
	}
	ord, err := a.orderSvc.CreateOrder(ctx, order.CreateOrderCmd{
		UID: cmd.UID,
		Items: slice.Map(cmd.Items, func(idx int, src domain.IntentItem) order.Item {
			return order.Item{VariationID: src.VariationID, Quantity: src.Quantity}
		}),
		Address: order.Address{
			ProvinceID:   cmd.ProvinceID,
			ProvinceName: cmd.ProvinceName,
			WardID:       cmd.WardID,
			WardName:     cmd.WardName,
			Street:       cmd.Street,
			ReceiverName: cmd.ReceiverName,
			Phone:        cmd.Phone,
			Lat:          cmd.Lat,
			Lng:          cmd.Lng,
		},
		Note:          cmd.Note,
		PaymentMethod: cmd.PaymentMethod,
		BankCode:      cmd.BankCode,
		ClientIP:      cmd.ClientIP,
	})
	if err != nil {
		// 下单没成功就归还占位, 同一个请求ID还能重试
		a.releaseRequestID(ctx, cmd.RequestID)
		return domain.SubmitResult{}, err
	}
	return domain.SubmitResult{OrderSN: ord.SN, RedirectURL: ord.PaymentURL}, nil
}

func (a *orderAdapter) releaseRequestID(ctx context.Context, requestID string) {
	_, err := a.cache.Delete(ctx, fmt.Sprintf("order:create:%s", requestID))
	if err != nil {
		a.logger.Error("归还请求ID占位失败",
			elog.String("requestID", requestID), elog.FieldErr(err))
	}
}

// checkRequestID 和订单接口同一套请求ID去重口径
func (a *orderAdapter) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := fmt.Sprintf("order:create:%s", requestID)
	val := a.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("%w: %s", ErrDuplicateSubmit, requestID)
	}
	if err := a.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (a *orderAdapter) Find(ctx context.Context, uid int64, sn string) (OrderInfo, error) {
	ord, err := a.orderSvc.FindByUIDAndSN(ctx, uid, sn)
	if err != nil {
		return OrderInfo{}, err
	}
	return OrderInfo{
		SN:          ord.SN,
		Subtotal:    ord.Subtotal,
		ShippingFee: ord.ShippingFee,
		Total:       ord.Total,
	}, nil
}

func (a *orderAdapter) UpdateAddress(ctx context.Context, uid int64, sn string, address AddressInput) error {
	_, err := a.orderSvc.UpdateShippingAddress(ctx, uid, sn, order.Address{
		ProvinceID:   address.ProvinceID,
		ProvinceName: address.ProvinceName,
		WardID:       address.WardID,
		WardName:     address.WardName,
		Street:       address.Street,
		ReceiverName: address.ReceiverName,
		Phone:        address.Phone,
		Lat:          address.Lat,
		Lng:          address.Lng,
	})
	return err
}
