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

package database

import (
	"context"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type txKey struct{}

// WithTx 把已开启的事务放进context, 同一业务流程里的各个DAO共用这份事务
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext 取出context携带的事务, 没有时退回模块自己的连接
func FromContext(ctx context.Context, db *egorm.Component) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}

// Transaction 开启一个跨DAO事务, 回调里凡是经FromContext取连接的DAO
// 都落在同一事务内, 回调报错则整体回滚
func Transaction(ctx context.Context, db *egorm.Component, fn func(ctx context.Context) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
