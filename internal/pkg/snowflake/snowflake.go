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

package snowflake

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var ErrExceedNode = errors.New("node超出限制")

const maxNode int64 = 1023

// TxnRefGenerator 生成支付网关交易引用号。
// 网关要求同一商户下引用号全局唯一, 所以用snowflake而不是订单自增ID。
type TxnRefGenerator struct {
	node *snowflake.Node
}

func NewTxnRefGenerator(nodeID int64) (*TxnRefGenerator, error) {
	if nodeID < 0 || nodeID > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeID)
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &TxnRefGenerator{node: n}, nil
}

func (g *TxnRefGenerator) Generate() string {
	return g.node.Generate().String()
}
