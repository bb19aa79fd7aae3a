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
	"github.com/gotomicro/ego/core/econf"

	"github.com/lapviet/lapstore/internal/payment/internal/service/vnpay"
	"github.com/lapviet/lapstore/internal/pkg/snowflake"
)

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
	// NodeID 雪花算法节点ID, 多实例部署时每个实例要不同
	NodeID int64
}

func InitVNPayConfig() VNPayConfig {
	var cfg VNPayConfig
	err := econf.UnmarshalKey("vnpay", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitVNPayClient(cfg VNPayConfig) *vnpay.Client {
	return vnpay.NewClient(vnpay.Config{
		TmnCode:    cfg.TmnCode,
		HashSecret: cfg.HashSecret,
		PayURL:     cfg.PayURL,
		ReturnURL:  cfg.ReturnURL,
	})
}

func InitTxnRefGenerator(cfg VNPayConfig) *snowflake.TxnRefGenerator {
	g, err := snowflake.NewTxnRefGenerator(cfg.NodeID)
	if err != nil {
		panic(err)
	}
	return g
}
