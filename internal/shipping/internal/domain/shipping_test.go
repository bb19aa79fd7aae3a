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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateQuote(t *testing.T) {
	t.Parallel()

	hcm := Province{ID: 1, Name: "Hồ Chí Minh", IsHCM: true, BaseFee: 30_000, MaxFee: 60_000}
	hanoi := Province{ID: 2, Name: "Hà Nội", BaseFee: 40_000, MaxFee: 80_000}
	freeProvince := Province{ID: 3, Name: "Đà Nẵng", FreeShipping: true, BaseFee: 50_000}

	testCases := []struct {
		name     string
		province Province
		ward     Ward
		subtotal int64
		want     Quote
	}{
		{
			name:     "未选择省份",
			province: Province{},
			ward:     Ward{},
			subtotal: 5_000_000,
			want:     Quote{Fee: 0, Reason: ReasonNoProvince},
		},
		{
			name:     "整省免运费",
			province: freeProvince,
			ward:     Ward{ID: 31, ProvinceID: 3, ExtraFee: 20_000},
			subtotal: 100_000,
			want:     Quote{Fee: 0, Reason: ReasonFreeByProvince},
		},
		{
			name:     "胡志明市满额免费",
			province: hcm,
			ward:     Ward{ID: 11, ProvinceID: 1, ExtraFee: 10_000},
			subtotal: 1_000_000,
			want:     Quote{Fee: 0, Reason: ReasonHCMSubtotalFree},
		},
		{
			name:     "胡志明市未满额按标准计费",
			province: hcm,
			ward:     Ward{ID: 11, ProvinceID: 1, ExtraFee: 10_000},
			subtotal: 999_999,
			want:     Quote{Fee: 40_000, Reason: ReasonStandard},
		},
		{
			name:     "基础运费加坊级附加费",
			province: hanoi,
			ward:     Ward{ID: 21, ProvinceID: 2, ExtraFee: 15_000},
			subtotal: 500_000,
			want:     Quote{Fee: 55_000, Reason: ReasonStandard},
		},
		{
			name:     "未选择坊时只收基础运费",
			province: hanoi,
			ward:     Ward{},
			subtotal: 500_000,
			want:     Quote{Fee: 40_000, Reason: ReasonStandard},
		},
		{
			name:     "附加费超出上限被截断",
			province: hanoi,
			ward:     Ward{ID: 22, ProvinceID: 2, ExtraFee: 100_000},
			subtotal: 500_000,
			want:     Quote{Fee: 80_000, Reason: ReasonStandard},
		},
		{
			name:     "负附加费不会产生负运费",
			province: Province{ID: 4, BaseFee: 10_000},
			ward:     Ward{ID: 41, ProvinceID: 4, ExtraFee: -20_000},
			subtotal: 500_000,
			want:     Quote{Fee: 0, Reason: ReasonStandard},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CalculateQuote(tc.province, tc.ward, tc.subtotal))
		})
	}
}
