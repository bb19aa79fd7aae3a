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

package domain

// HCMFreeShippingThreshold 胡志明市满额免运费的门槛, 单位为VND
const HCMFreeShippingThreshold int64 = 1_000_000

type Province struct {
	ID   int64
	Name string
	// IsHCM 胡志明市享受满额免运费
	IsHCM bool
	// FreeShipping 整省免运费
	FreeShipping bool
	// BaseFee 本省基础运费
	BaseFee int64
	// MaxFee 本省运费上限, 0表示不设上限
	MaxFee int64
}

type Ward struct {
	ID         int64
	ProvinceID int64
	Name       string
	// ExtraFee 坊/乡级的附加运费, 偏远地区为正数
	ExtraFee int64
}

type Reason string

const (
	ReasonNoProvince      Reason = "NO_PROVINCE"
	ReasonFreeByProvince  Reason = "FREE_BY_PROVINCE"
	ReasonHCMSubtotalFree Reason = "HCM_SUBTOTAL_FREE"
	ReasonStandard        Reason = "STANDARD"
)

// Quote 运费报价, Reason给前端解释费用来源
type Quote struct {
	Fee    int64
	Reason Reason
}

// CalculateQuote 计算运费。省份ID为0视为尚未选择省份, 此时报价为0,
// 前端据此提示用户先选址。规则按优先级依次匹配:
// 整省免运费 > 胡志明市满额免费 > 基础运费加坊级附加费并受上限约束。
func CalculateQuote(province Province, ward Ward, subtotal int64) Quote {
	if province.ID == 0 {
		return Quote{Fee: 0, Reason: ReasonNoProvince}
	}
	if province.FreeShipping {
		return Quote{Fee: 0, Reason: ReasonFreeByProvince}
	}
	if province.IsHCM && subtotal >= HCMFreeShippingThreshold {
		return Quote{Fee: 0, Reason: ReasonHCMSubtotalFree}
	}
	fee := province.BaseFee + ward.ExtraFee
	if province.MaxFee > 0 && fee > province.MaxFee {
		fee = province.MaxFee
	}
	if fee < 0 {
		fee = 0
	}
	return Quote{Fee: fee, Reason: ReasonStandard}
}
