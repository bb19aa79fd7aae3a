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

package web

import (
	"github.com/ecodeclub/ginx"

	"github.com/lapviet/lapstore/internal/order/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	stockNotEnoughResult = ginx.Result{
		Code: errs.StockNotEnough.Code,
		Msg:  errs.StockNotEnough.Msg,
	}
	cancelNotAllowedResult = ginx.Result{
		Code: errs.CancelNotAllowed.Code,
		Msg:  errs.CancelNotAllowed.Msg,
	}
	invalidAddressResult = ginx.Result{
		Code: errs.InvalidAddress.Code,
		Msg:  errs.InvalidAddress.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
	addressChangeDenyResult = ginx.Result{
		Code: errs.AddressChangeDeny.Code,
		Msg:  errs.AddressChangeDeny.Msg,
	}
)
