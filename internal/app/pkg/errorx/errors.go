package errorx

import (
	"errors"
	"fmt"
)

// 同一存储同一时刻只允许一个同步流程在写入
var ErrRunInProgress = errors.New("sync run already in progress")

// Kind 错误分类
// 同步流程的所有失败都归入以下五类，由调用方按类决定状态转移
type Kind int

const (
	KindUnknown Kind = iota
	KindSignatureExpired // 签名失效（可恢复：等待新签名后重试同一页）
	KindTransport        // 网络/上游拒绝（中止本轮，游标可续传）
	KindMalformed        // 响应体不符合约定格式（中止本轮）
	KindValidation       // 调用方参数错误（发起网络请求前拦截）
	KindPersistence      // 落库失败（整页事务已回滚）
)

// String 返回分类名称
func (k Kind) String() string {
	switch k {
	case KindSignatureExpired:
		return "SignatureExpired"
	case KindTransport:
		return "Transport"
	case KindMalformed:
		return "MalformedResponse"
	case KindValidation:
		return "ValidationError"
	case KindPersistence:
		return "PersistenceError"
	default:
		return "Unknown"
	}
}

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As 链式判断
func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建分类错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf 创建分类错误（格式化消息）
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加分类
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 提取错误分类，非分类错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
