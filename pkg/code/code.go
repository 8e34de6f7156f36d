package code

import (
	"fmt"
	"net/http"
)

// Code 业务响应码
// Code is a business response code carrying a bilingual message and the HTTP status it maps to.
type Code struct {
	// 状态码
	code int
	// 是否为成功码
	status bool
	// HTTP 状态
	httpStatus int
	// 多语言消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError 注册一个错误码，重复注册会 panic
func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, status: false, httpStatus: httpStatus, Lang: l}
}

// NewSuss 注册一个成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Reset 清空附加的数据与详情
func (e *Code) Reset() *Code {
	e.data = nil
	e.haveData = false
	e.details = []string{}
	e.haveDetails = false
	return e
}

// Clone 创建一个不带附加数据的副本
// Registered codes are package level singletons, so handlers clone before attaching data.
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
		details:    []string{},
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData 返回附带数据的副本
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.details = e.details
	c.haveDetails = e.haveDetails
	c.haveData = true
	c.data = data
	return c
}

// WithDetails 返回附带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.data = e.data
	c.haveData = e.haveData
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is 按错误码比较，使 errors.Is 可以匹配 WithData/WithDetails 产生的副本
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

// StatusCode 返回对应的 HTTP 状态码
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
