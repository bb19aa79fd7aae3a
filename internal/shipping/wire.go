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

package shipping

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
	"github.com/google/wire"

	"github.com/lapviet/lapstore/internal/shipping/internal/repository"
	"github.com/lapviet/lapstore/internal/shipping/internal/repository/cache"
	"github.com/lapviet/lapstore/internal/shipping/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/shipping/internal/service"
	"github.com/lapviet/lapstore/internal/shipping/internal/web"
)

func InitModule(db *egorm.Component, ec ecache.Cache) *Module {
	wire.Build(
		InitTablesOnce,
		cache.NewShippingCache,
		repository.NewShippingRepository,
		service.NewService,
		web.NewHandler,
		wire.Struct(new(Module), "*"))
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ShippingDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewShippingGORMDAO(db)
}
