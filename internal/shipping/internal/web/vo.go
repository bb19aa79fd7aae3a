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

type WardsReq struct {
	ProvinceID int64 `json:"provinceId"`
}

type QuoteReq struct {
	ProvinceID int64 `json:"provinceId"`
	WardID     int64 `json:"wardId,omitempty"`
	Subtotal   int64 `json:"subtotal"`
}

type QuoteResp struct {
	Fee    int64  `json:"fee"`
	Reason string `json:"reason"`
}

type Province struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FreeShipping bool   `json:"freeShipping"`
}

type ProvincesResp struct {
	Provinces []Province `json:"provinces"`
}

type Ward struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type WardsResp struct {
	Wards []Ward `json:"wards"`
}
