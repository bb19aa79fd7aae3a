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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrItemNotFound = gorm.ErrRecordNotFound

type CartDAO interface {
	Upsert(ctx context.Context, item CartItem) (int64, error)
	UpdateQuantity(ctx context.Context, uid, id, quantity int64) error
	Delete(ctx context.Context, uid int64, ids []int64) error
	DeleteAll(ctx context.Context, uid int64) error
	FindByUID(ctx context.Context, uid int64) ([]CartItem, error)
	FindByID(ctx context.Context, uid, id int64) (CartItem, error)
}

type CartGORMDAO struct {
	db *egorm.Component
}

func NewCartGORMDAO(db *egorm.Component) CartDAO {
	return &CartGORMDAO{db: db}
}

// Upsert 同一用户重复加购同一SKU时累加数量, 价格快照保留首次加购时的值
func (d *CartGORMDAO) Upsert(ctx context.Context, item CartItem) (int64, error) {
	now := time.Now().UnixMilli()
	item.Ctime, item.Utime = now, now
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "uid"}, {Name: "variation_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
			"utime":    now,
		}),
	}).Create(&item).Error
	return item.Id, err
}

func (d *CartGORMDAO) UpdateQuantity(ctx context.Context, uid, id, quantity int64) error {
	res := d.db.WithContext(ctx).Model(&CartItem{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]any{
			"quantity": quantity,
			"utime":    time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("购物车条目不存在")
	}
	return nil
}

func (d *CartGORMDAO) Delete(ctx context.Context, uid int64, ids []int64) error {
	return d.db.WithContext(ctx).
		Where("uid = ? AND id IN ?", uid, ids).
		Delete(&CartItem{}).Error
}

func (d *CartGORMDAO) DeleteAll(ctx context.Context, uid int64) error {
	return d.db.WithContext(ctx).Where("uid = ?", uid).Delete(&CartItem{}).Error
}

func (d *CartGORMDAO) FindByUID(ctx context.Context, uid int64) ([]CartItem, error) {
	var res []CartItem
	err := d.db.WithContext(ctx).Where("uid = ?", uid).Order("ctime DESC").Find(&res).Error
	return res, err
}

func (d *CartGORMDAO) FindByID(ctx context.Context, uid, id int64) (CartItem, error) {
	var res CartItem
	err := d.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&res).Error
	return res, err
}

type CartItem struct {
	Id          int64 `gorm:"primaryKey;autoIncrement;comment:购物车条目自增ID"`
	Uid         int64 `gorm:"column:uid;not null;uniqueIndex:uniq_uid_variation,priority:1;comment:用户ID"`
	VariationID int64 `gorm:"column:variation_id;not null;uniqueIndex:uniq_uid_variation,priority:2;comment:商品SKU自增ID"`
	Quantity    int64 `gorm:"not null;comment:数量"`
	PriceAtAdd  int64 `gorm:"not null;comment:加购时成交价快照"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&CartItem{})
}
