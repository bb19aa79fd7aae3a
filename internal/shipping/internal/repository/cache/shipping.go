package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"

	"github.com/lapviet/lapstore/internal/shipping/internal/domain"
)

// 行政区划几乎不变, 缓存期放宽
const geoExpiration = 24 * time.Hour

var ErrKeyNotFound = errors.New("缓存中没找到")

type ShippingCache interface {
	SetProvinces(ctx context.Context, provinces []domain.Province) error
	GetProvinces(ctx context.Context) ([]domain.Province, error)
	SetWards(ctx context.Context, provinceID int64, wards []domain.Ward) error
	GetWards(ctx context.Context, provinceID int64) ([]domain.Ward, error)
}

type shippingCache struct {
	ec ecache.Cache
}

func NewShippingCache(ec ecache.Cache) ShippingCache {
	return &shippingCache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "shipping:",
		},
	}
}

func (s *shippingCache) SetProvinces(ctx context.Context, provinces []domain.Province) error {
	data, err := json.Marshal(provinces)
	if err != nil {
		return errors.Wrap(err, "序列化省份列表失败")
	}
	return s.ec.Set(ctx, "provinces", string(data), geoExpiration)
}

func (s *shippingCache) GetProvinces(ctx context.Context) ([]domain.Province, error) {
	val := s.ec.Get(ctx, "provinces")
	if val.KeyNotFound() {
		return nil, ErrKeyNotFound
	}
	if val.Err != nil {
		return nil, errors.Wrap(val.Err, "查询缓存出错")
	}
	var res []domain.Province
	if err := json.Unmarshal([]byte(val.Val.(string)), &res); err != nil {
		return nil, errors.Wrap(err, "反序列化省份列表失败")
	}
	return res, nil
}

func (s *shippingCache) SetWards(ctx context.Context, provinceID int64, wards []domain.Ward) error {
	data, err := json.Marshal(wards)
	if err != nil {
		return errors.Wrap(err, "序列化坊/乡列表失败")
	}
	return s.ec.Set(ctx, s.wardsKey(provinceID), string(data), geoExpiration)
}

func (s *shippingCache) GetWards(ctx context.Context, provinceID int64) ([]domain.Ward, error) {
	val := s.ec.Get(ctx, s.wardsKey(provinceID))
	if val.KeyNotFound() {
		return nil, ErrKeyNotFound
	}
	if val.Err != nil {
		return nil, errors.Wrap(val.Err, "查询缓存出错")
	}
	var res []domain.Ward
	if err := json.Unmarshal([]byte(val.Val.(string)), &res); err != nil {
		return nil, errors.Wrap(err, "反序列化坊/乡列表失败")
	}
	return res, nil
}

func (s *shippingCache) wardsKey(provinceID int64) string {
	return fmt.Sprintf("wards:%d", provinceID)
}
