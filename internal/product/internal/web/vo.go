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

	"github.com/lapviet/lapstore/internal/product/internal/domain"
)

type SNReq struct {
	SN string `json:"sn"`
}

type ListReq struct {
	Category string `json:"category,omitempty"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type ListResp struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products,omitempty"`
}

type SearchReq struct {
	Keywords string `json:"keywords"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type SearchResp struct {
	Products []Product `json:"products,omitempty"`
}

type SaveReq struct {
	Product Product `json:"product"`
}

type SaveResp struct {
	ID int64 `json:"id"`
}

type Product struct {
	ID         int64       `json:"id,omitempty"`
	SN         string      `json:"sn"`
	Name       string      `json:"name"`
	Desc       string      `json:"desc"`
	Brand      string      `json:"brand,omitempty"`
	Category   string      `json:"category,omitempty"`
	Variations []Variation `json:"variations,omitempty"`
}

type Variation struct {
	ID            int64  `json:"id,omitempty"`
	SN            string `json:"sn"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discountPrice,omitempty"`
	Stock         int64  `json:"stock"`
	Attrs         string `json:"attrs,omitempty"`
	Image         string `json:"image"`
}

func newProduct(p domain.Product) Product {
	return Product{
		ID:       p.ID,
		SN:       p.SN,
		Name:     p.Name,
		Desc:     p.Desc,
		Brand:    p.Brand,
		Category: p.Category,
		Variations: slice.Map(p.Variations, func(idx int, src domain.Variation) Variation {
			return newVariation(src)
		}),
	}
}

func newVariation(v domain.Variation) Variation {
	return Variation{
		ID:            v.ID,
		SN:            v.SN,
		Name:          v.Name,
		Price:         v.Price,
		DiscountPrice: v.DiscountPrice,
		Stock:         v.Stock,
		Attrs:         v.Attrs,
		Image:         v.Image,
	}
}

func (p Product) newDomainProduct() domain.Product {
	res := domain.Product{
		ID:       p.ID,
		SN:       p.SN,
		Name:     p.Name,
		Desc:     p.Desc,
		Brand:    p.Brand,
		Category: p.Category,
		Status:   domain.StatusOnShelf,
	}
	variations := make([]domain.Variation, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, domain.Variation{
			ID:            v.ID,
			SN:            v.SN,
			Name:          v.Name,
			Price:         v.Price,
			DiscountPrice: v.DiscountPrice,
			Stock:         v.Stock,
			Attrs:         v.Attrs,
			Image:         v.Image,
			Status:        domain.StatusOnShelf,
		})
	}
	res.Variations = variations
	return res
}
