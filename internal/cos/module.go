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

package cos

import (
	"github.com/lapviet/lapstore/internal/cos/internal/web"
)

type Handler = web.Handler

type Config struct {
	SecretID  string `yaml:"secretID"`
	SecretKey string `yaml:"secretKey"`
	AppID     string `yaml:"appID"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

type Module struct {
	Hdl *Handler
}

func InitModule(cfg Config) *Module {
	return &Module{
		Hdl: web.NewHandler(cfg.SecretID, cfg.SecretKey, cfg.AppID, cfg.Bucket, cfg.Region),
	}
}
