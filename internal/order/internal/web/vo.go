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
	"github.com/ecodeclub/ekit/slice"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
)

type PreviewReq struct {
	Items      []ItemReq `json:"items"`
	ProvinceID int64     `json:"provinceId"`
	WardID     int64     `json:"wardId"`
}

type ItemReq struct {
	VariationID int64 `json:"variationId"`
	Quantity    int64 `json:"quantity"`
}

type PreviewResp struct {
	Items          []Item `json:"items"`
	Subtotal       int64  `json:"subtotal"`
	ShippingFee    int64  `json:"shippingFee"`
	ShippingReason string `json:"shippingReason"`
	Total          int64  `json:"total"`
	// StockWarnings 报价时已超出现有库存的条目, 前端据此提示并拦截提交
	StockWarnings []StockWarning `json:"stockWarnings,omitempty"`
}

type StockWarning struct {
	VariationID int64 `json:"variationId"`
	Requested   int64 `json:"requested"`
	Available   int64 `json:"available"`
}

type CreateOrderReq struct {
	// RequestID 幂等键, 由前端在进入结算页时生成
	RequestID     string     `json:"requestId"`
	Items         []ItemReq  `json:"items"`
	Address       AddressReq `json:"address"`
	Note          string     `json:"note"`
	PaymentMethod string     `json:"paymentMethod"`
	BankCode      string     `json:"bankCode"`
}

type AddressReq struct {
	ProvinceID   int64   `json:"provinceId"`
	ProvinceName string  `json:"provinceName"`
	WardID       int64   `json:"wardId"`
	WardName     string  `json:"wardName"`
	Street       string  `json:"street"`
	ReceiverName string  `json:"receiverName"`
	Phone        string  `json:"phone"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type CreateOrderResp struct {
	OrderSN string `json:"orderSn"`
	// PaymentURL VNPAY收银台跳转链接, COD支付为空
	PaymentURL string `json:"paymentUrl"`
}

type ListOrdersReq struct {
	// Status 为空表示不过滤
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type OrderSNReq struct {
	SN string `json:"sn"`
}

type UpdateAddressReq struct {
	SN      string     `json:"sn"`
	Address AddressReq `json:"address"`
}

type UpdatePaymentMethodReq struct {
	SN            string `json:"sn"`
	PaymentMethod string `json:"paymentMethod"`
	BankCode      string `json:"bankCode"`
}

type UpdateStatusReq struct {
	SN     string `json:"sn"`
	Status string `json:"status"`
}

type Order struct {
	SN            string  `json:"sn"`
	Items         []Item  `json:"items"`
	Subtotal      int64   `json:"subtotal"`
	ShippingFee   int64   `json:"shippingFee"`
	Total         int64   `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
	Note          string  `json:"note"`
	Address       Address `json:"address"`
	Status        string  `json:"status"`
	// ReserveExpiresAt 待支付订单的支付截止时间, 前端据此倒计时
	ReserveExpiresAt int64 `json:"reserveExpiresAt"`
	PaidAt           int64 `json:"paidAt"`
	Ctime            int64 `json:"ctime"`
}

type Item struct {
	VariationID int64  `json:"variationId"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	RealPrice   int64  `json:"realPrice"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type Address struct {
	ProvinceID   int64   `json:"provinceId"`
	ProvinceName string  `json:"provinceName"`
	WardID       int64   `json:"wardId"`
	WardName     string  `json:"wardName"`
	Street       string  `json:"street"`
	ReceiverName string  `json:"receiverName"`
	Phone        string  `json:"phone"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

func newOrder(order domain.Order) Order {
	return Order{
		SN:            order.SN,
		Items:         newItems(order.Items),
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Note:          order.Note,
		Address: Address{
			ProvinceID:   order.Address.ProvinceID,
			ProvinceName: order.Address.ProvinceName,
			WardID:       order.Address.WardID,
			WardName:     order.Address.WardName,
			Street:       order.Address.Street,
			ReceiverName: order.Address.ReceiverName,
			Phone:        order.Address.Phone,
			Lat:          order.Address.Lat,
			Lng:          order.Address.Lng,
		},
		Status:           order.Status.String(),
		ReserveExpiresAt: order.ReserveExpiresAt,
		PaidAt:           order.PaidAt,
		Ctime:            order.Ctime,
	}
}

func newStockWarnings(warnings []domain.StockWarning) []StockWarning {
	return slice.Map(warnings, func(idx int, src domain.StockWarning) StockWarning {
		return StockWarning{
			VariationID: src.VariationID,
			Requested:   src.Requested,
			Available:   src.Available,
		}
	})
}

func newItems(items []domain.Item) []Item {
	return slice.Map(items, func(idx int, src domain.Item) Item {
		return Item{
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

func toDomainItems(items []ItemReq) []domain.Item {
	return slice.Map(items, func(idx int, src ItemReq) domain.Item {
		return domain.Item{
			VariationID: src.VariationID,
			Quantity:    src.Quantity,
		}
	})
}

func toDomainAddress(address AddressReq) domain.Address {
	return domain.Address{
		ProvinceID:   address.ProvinceID,
		ProvinceName: address.ProvinceName,
		WardID:       address.WardID,
		WardName:     address.WardName,
		Street:       address.Street,
		ReceiverName: address.ReceiverName,
		Phone:        address.Phone,
		Lat:          address.Lat,
		Lng:          address.Lng,
	}
}
