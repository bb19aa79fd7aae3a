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
	"github.com/lapviet/lapstore/internal/checkout/internal/service"
)

type GatewayReturnReq struct {
	Success bool `json:"success"`
}

type GatewayReturnResp struct {
	OrderSN string `json:"orderSN"`
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

type PrepareAddressChangeReq struct {
	OrderSN string  `json:"orderSN"`
	Address Address `json:"address"`
}

// ChangeProposal 原样回传给commit接口, 服务端按Delta决定要不要确认
type ChangeProposal struct {
	OrderSN           string  `json:"orderSN"`
	Address           Address `json:"address"`
	OldFee            int64   `json:"oldFee"`
	NewFee            int64   `json:"newFee"`
	Delta             int64   `json:"delta"`
	NeedsConfirmation bool    `json:"needsConfirmation"`
}

type CommitAddressChangeReq struct {
	Proposal  ChangeProposal `json:"proposal"`
	Confirmed bool           `json:"confirmed"`
}

func (a Address) toInput() service.AddressInput {
	return service.AddressInput{
		ProvinceID:   a.ProvinceID,
		ProvinceName: a.ProvinceName,
		WardID:       a.WardID,
		WardName:     a.WardName,
		Street:       a.Street,
		ReceiverName: a.ReceiverName,
		Phone:        a.Phone,
		Lat:          a.Lat,
		Lng:          a.Lng,
	}
}

func newAddress(input service.AddressInput) Address {
	return Address{
		ProvinceID:   input.ProvinceID,
		ProvinceName: input.ProvinceName,
		WardID:       input.WardID,
		WardName:     input.WardName,
		Street:       input.Street,
		ReceiverName: input.ReceiverName,
		Phone:        input.Phone,
		Lat:          input.Lat,
		Lng:          input.Lng,
	}
}

func newChangeProposal(p service.ChangeProposal) ChangeProposal {
	return ChangeProposal{
		OrderSN:           p.OrderSN,
		Address:           newAddress(p.Address),
		OldFee:            p.OldFee,
		NewFee:            p.NewFee,
		Delta:             p.Delta,
		NeedsConfirmation: p.NeedsConfirmation(),
	}
}

func (p ChangeProposal) toDomain() service.ChangeProposal {
	return service.ChangeProposal{
		OrderSN: p.OrderSN,
		Address: p.Address.toInput(),
		OldFee:  p.OldFee,
		NewFee:  p.NewFee,
		Delta:   p.Delta,
	}
}
