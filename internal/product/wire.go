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

//go:build wireinject

package product

import (
	"sync"

	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/olivere/elastic/v7"

	"github.com/lapviet/lapstore/internal/product/internal/repository"
	"github.com/lapviet/lapstore/internal/product/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/product/internal/service"
	"github.com/lapviet/lapstore/internal/product/internal/web"
)

var ServiceSet = wire.NewSet(
	InitTablesOnce,
	dao.NewProductElasticDAO,
	repository.NewProductRepository,
	service.NewService)

func InitModule(db *egorm.Component, es *elastic.Client) *Module {
	wire.Build(
		ServiceSet,
		web.NewHandler,
		web.NewAdminHandler,
		wire.Struct(new(Module), "*"))
	return new(Module)
}

func InitService(db *egorm.Component, es *elastic.Client) Service {
	wire.Build(ServiceSet)
	return nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ProductDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewProductGORMDAO(db)
}
