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

package errs

var (
	SystemError       = ErrorCode{Code: 507001, Msg: "系统错误"}
	OrderNotFound     = ErrorCode{Code: 507002, Msg: "订单不存在"}
	StockNotEnough    = ErrorCode{Code: 507003, Msg: "库存不足"}
	CancelNotAllowed  = ErrorCode{Code: 507004, Msg: "当前状态不允许取消"}
	InvalidAddress    = ErrorCode{Code: 507005, Msg: "收货地址不完整"}
	DuplicateRequest  = ErrorCode{Code: 507006, Msg: "重复请求"}
	AddressChangeDeny = ErrorCode{Code: 507007, Msg: "支付完成后不能变更影响运费的地址"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
