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

package job

import (
	"context"
	"time"

	"github.com/lapviet/lapstore/internal/order/internal/service"
)

// ReleaseReservationsJob 定时回收超时未支付订单的预占库存
type ReleaseReservationsJob struct {
	svc     service.Service
	limit   int
	timeout time.Duration
}

func NewReleaseReservationsJob(svc service.Service, limit int, timeout time.Duration) *ReleaseReservationsJob {
	return &ReleaseReservationsJob{svc: svc, limit: limit, timeout: timeout}
}

func (c *ReleaseReservationsJob) Name() string {
	return "ReleaseReservationsJob"
}

func (c *ReleaseReservationsJob) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, c.timeout)
	defer cancelFunc()
	return c.svc.ReleaseExpiredReservations(ctx, c.limit)
}
