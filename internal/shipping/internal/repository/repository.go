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

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/shipping/internal/domain"
	"github.com/lapviet/lapstore/internal/shipping/internal/repository/cache"
	"github.com/lapviet/lapstore/internal/shipping/internal/repository/dao"
)

type ShippingRepository interface {
	FindProvinces(ctx context.Context) ([]domain.Province, error)
	FindProvinceByID(ctx context.Context, id int64) (domain.Province, error)
	FindWardsByProvinceID(ctx context.Context, provinceID int64) ([]domain.Ward, error)
	FindWardByID(ctx context.Context, id int64) (domain.Ward, error)
}

func NewShippingRepository(d dao.ShippingDAO, c cache.ShippingCache) ShippingRepository {
	return &shippingRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

type shippingRepository struct {
	dao    dao.ShippingDAO
	cache  cache.ShippingCache
	logger *elog.Component
}

func (s *shippingRepository) FindProvinces(ctx context.Context) ([]domain.Province, error) {
	provinces, err := s.cache.GetProvinces(ctx)
	if err == nil {
		return provinces, nil
	}
	entities, err := s.dao.FindProvinces(ctx)
	if err != nil {
		return nil, err
	}
	provinces = slice.Map(entities, func(idx int, src dao.Province) domain.Province {
		return s.toDomainProvince(src)
	})
	if err = s.cache.SetProvinces(ctx, provinces); err != nil {
		s.logger.Error("缓存省份列表失败", elog.FieldErr(err))
	}
	return provinces, nil
}

func (s *shippingRepository) FindProvinceByID(ctx context.Context, id int64) (domain.Province, error) {
	entity, err := s.dao.FindProvinceByID(ctx, id)
	if err != nil {
		return domain.Province{}, err
	}
	return s.toDomainProvince(entity), nil
}

func (s *shippingRepository) FindWardsByProvinceID(ctx context.Context, provinceID int64) ([]domain.Ward, error) {
	wards, err := s.cache.GetWards(ctx, provinceID)
	if err == nil {
		return wards, nil
	}
	entities, err := s.dao.FindWardsByProvinceID(ctx, provinceID)
	if err != nil {
		return nil, err
	}
	wards = slice.Map(entities, func(idx int, src dao.Ward) domain.Ward {
		return s.toDomainWard(src)
	})
	if err = s.cache.SetWards(ctx, provinceID, wards); err != nil {
		s.logger.Error("缓存坊/乡列表失败", elog.Int64("provinceID", provinceID), elog.FieldErr(err))
	}
	return wards, nil
}

func (s *shippingRepository) FindWardByID(ctx context.Context, id int64) (domain.Ward, error) {
	entity, err := s.dao.FindWardByID(ctx, id)
	if err != nil {
		return domain.Ward{}, err
	}
	return s.toDomainWard(entity), nil
}

func (s *shippingRepository) toDomainProvince(p dao.Province) domain.Province {
	return domain.Province{
		ID:           p.Id,
		Name:         p.Name,
		IsHCM:        p.IsHCM,
		FreeShipping: p.FreeShipping,
		BaseFee:      p.BaseFee,
		MaxFee:       p.MaxFee,
	}
}

func (s *shippingRepository) toDomainWard(w dao.Ward) domain.Ward {
	return domain.Ward{
		ID:         w.Id,
		ProvinceID: w.ProvinceID,
		Name:       w.Name,
		ExtraFee:   w.ExtraFee,
	}
}
