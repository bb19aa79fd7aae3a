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
	"fmt"

	"github.com/lapviet/lapstore/internal/shipping/internal/domain"
	"github.com/lapviet/lapstore/internal/shipping/internal/repository"
)

//go:generate mockgen -source=./service.go -package=shippingmocks -destination=../../mocks/shipping.mock.go -typed Service
type Service interface {
	Provinces(ctx context.Context) ([]domain.Province, error)
	Wards(ctx context.Context, provinceID int64) ([]domain.Ward, error)
	// Quote 计算运费报价。provinceID为0表示尚未选择省份, wardID为0表示未选坊
	Quote(ctx context.Context, provinceID, wardID, subtotal int64) (domain.Quote, error)
}

func NewService(repo repository.ShippingRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ShippingRepository
}

func (s *service) Provinces(ctx context.Context) ([]domain.Province, error) {
	return s.repo.FindProvinces(ctx)
}

func (s *service) Wards(ctx context.Context, provinceID int64) ([]domain.Ward, error) {
	return s.repo.FindWardsByProvinceID(ctx, provinceID)
}

func (s *service) Quote(ctx context.Context, provinceID, wardID, subtotal int64) (domain.Quote, error) {
	if provinceID == 0 {
		return domain.CalculateQuote(domain.Province{}, domain.Ward{}, subtotal), nil
	}
	province, err := s.repo.FindProvinceByID(ctx, provinceID)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("查找省份失败: %w", err)
	}
	var ward domain.Ward
	if wardID != 0 {
		ward, err = s.repo.FindWardByID(ctx, wardID)
		if err != nil {
			return domain.Quote{}, fmt.Errorf("查找坊/乡失败: %w", err)
		}
	}
	return domain.CalculateQuote(province, ward, subtotal), nil
}
