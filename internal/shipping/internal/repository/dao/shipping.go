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

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type ShippingDAO interface {
	FindProvinces(ctx context.Context) ([]Province, error)
	FindProvinceByID(ctx context.Context, id int64) (Province, error)
	FindWardsByProvinceID(ctx context.Context, provinceID int64) ([]Ward, error)
	FindWardByID(ctx context.Context, id int64) (Ward, error)
}

type ShippingGORMDAO struct {
	db *egorm.Component
}

func NewShippingGORMDAO(db *egorm.Component) ShippingDAO {
	return &ShippingGORMDAO{db: db}
}

func (d *ShippingGORMDAO) FindProvinces(ctx context.Context) ([]Province, error) {
	var res []Province
	err := d.db.WithContext(ctx).Order("name ASC").Find(&res).Error
	return res, err
}

func (d *ShippingGORMDAO) FindProvinceByID(ctx context.Context, id int64) (Province, error) {
	var res Province
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ShippingGORMDAO) FindWardsByProvinceID(ctx context.Context, provinceID int64) ([]Ward, error) {
	var res []Ward
	err := d.db.WithContext(ctx).Where("province_id = ?", provinceID).Order("name ASC").Find(&res).Error
	return res, err
}

func (d *ShippingGORMDAO) FindWardByID(ctx context.Context, id int64) (Ward, error) {
	var res Ward
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

type Province struct {
	Id           int64  `gorm:"primaryKey;autoIncrement;comment:省份自增ID"`
	Name         string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_province_name;comment:省份名称"`
	IsHCM        bool   `gorm:"column:is_hcm;not null;default:false;comment:是否胡志明市"`
	FreeShipping bool   `gorm:"not null;default:false;comment:整省免运费"`
	BaseFee      int64  `gorm:"not null;default:0;comment:基础运费"`
	MaxFee       int64  `gorm:"not null;default:0;comment:运费上限,0表示不设上限"`
	Ctime        int64
	Utime        int64
}

type Ward struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:坊/乡自增ID"`
	ProvinceID int64  `gorm:"column:province_id;not null;index:idx_province_id;comment:省份自增ID"`
	Name       string `gorm:"type:varchar(128);not null;comment:坊/乡名称"`
	ExtraFee   int64  `gorm:"not null;default:0;comment:附加运费"`
	Ctime      int64
	Utime      int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Province{}, &Ward{})
}
