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

package domain

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusPending Status = iota + 1
	StatusCompleted
	StatusFailed
	StatusRefunded
)

type Method string

const (
	MethodCOD   Method = "COD"
	MethodVNPAY Method = "VNPAY"
)

// validBankCodes 每种支付方式允许的子渠道。COD没有子渠道,
// VNPAY的子渠道决定网关收银台上预选的银行通道
var validBankCodes = map[Method][]string{
	MethodCOD:   {""},
	MethodVNPAY: {"", "VNPAYQR", "VNBANK", "INTCARD", "INSTALLMENT"},
}

func ValidMethod(method Method, bankCode string) bool {
	codes, ok := validBankCodes[method]
	if !ok {
		return false
	}
	for _, c := range codes {
		if c == bankCode {
			return true
		}
	}
	return false
}

type Payment struct {
	ID      int64
	SN      string
	OrderID int64
	OrderSN string
	UID     int64

	Method   Method
	BankCode string
	// Amount 应付金额, 单位为VND
	Amount int64

	// TxnRef 发给VNPAY的对账号, COD支付为空
	TxnRef string
	// TransactionNo 网关回传的交易流水号
	TransactionNo string

	PaidAt int64
	Status Status
	Ctime  int64
	Utime  int64
}
