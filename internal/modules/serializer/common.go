package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log *zap.Logger

// SetLogger wires the package logger; called once from router setup.
func SetLogger(l *zap.Logger) { log = l }

// Response is the uniform API envelope.
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err builds an error response. Error detail is only exposed outside release
// mode.
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	if err != nil && log != nil {
		log.Sugar().Debugw("request failed", "code", errCode, "msg", msg, "err", err)
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error, check permissions or try again"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// NotFoundErr
func NotFoundErr(msg string, err error) Response {
	if msg == "" {
		msg = "record not found"
	}
	return Err(http.StatusNotFound, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}
