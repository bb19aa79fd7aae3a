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

package ioc

import (
	"github.com/lapviet/lapstore/internal/geo"

	"github.com/gotomicro/ego/core/econf"
)

func InitGeoModule() *geo.Module {
	type Config struct {
		BaseURL string `yaml:"baseURL"`
	}
	var cfg Config
	err := econf.UnmarshalKey("geo.nominatim", &cfg)
	if err != nil {
		panic(err)
	}
	return geo.InitModule(cfg.BaseURL)
}
