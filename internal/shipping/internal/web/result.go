package web

import (
	"github.com/ecodeclub/ginx"

	"github.com/lapviet/lapstore/internal/shipping/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)
