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

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

// pendingMaxAge 超过这个时长的断点视为过期, 认证恢复时直接清掉
const pendingMaxAge = 5 * time.Minute

var ErrNoPendingCheckout = errors.New("没有待恢复的结算断点")

// PendingStore 网关跳转前落断点, 回跳后取出做购物车清理。
// 按用户存一条, 新的覆盖旧的
type PendingStore struct {
	ec ecache.Cache
}

func NewPendingStore(ec ecache.Cache) *PendingStore {
	return &PendingStore{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "checkout:pending:",
		},
	}
}

func (p *PendingStore) Save(ctx context.Context, uid int64, pending domain.PendingCheckout) error {
	pending.Timestamp = time.Now().UnixMilli()
	data, err := json.Marshal(pending)
	if err != nil {
		return errors.Wrap(err, "序列化结算断点失败")
	}
	return p.ec.Set(ctx, p.key(uid), string(data), pendingMaxAge)
}

// Load 取出断点, 过期的当不存在处理并顺手清掉
func (p *PendingStore) Load(ctx context.Context, uid int64) (domain.PendingCheckout, error) {
	val := p.ec.Get(ctx, p.key(uid))
	if val.KeyNotFound() {
		return domain.PendingCheckout{}, ErrNoPendingCheckout
	}
	if val.Err != nil {
		return domain.PendingCheckout{}, errors.Wrap(val.Err, "查询结算断点出错")
	}
	var res domain.PendingCheckout
	if err := json.Unmarshal([]byte(val.Val.(string)), &res); err != nil {
		return domain.PendingCheckout{}, errors.Wrap(err, "反序列化结算断点失败")
	}
	if time.Since(time.UnixMilli(res.Timestamp)) > pendingMaxAge {
		_ = p.Clear(ctx, uid)
		return domain.PendingCheckout{}, ErrNoPendingCheckout
	}
	return res, nil
}

func (p *PendingStore) Clear(ctx context.Context, uid int64) error {
	_, err := p.ec.Delete(ctx, p.key(uid))
	return err
}

func (p *PendingStore) key(uid int64) string {
	return fmt.Sprintf("%d", uid)
}
