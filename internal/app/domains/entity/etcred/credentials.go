package etcred

import "github.com/xixiwenxuanhe/order-management/internal/app/pkg/errorx"

// Credentials 上游请求凭证
// 系统只消费外部提供的预签名凭证，不负责生成或续签
type Credentials struct {
	Authorization string // bearer 授权令牌
	Sign          string // x-request-sign 轮换签名
	SignTimestamp string // x-request-timestamp 签名时间戳
}

// Validate 校验凭证完整性
func (c Credentials) Validate() error {
	if c.Authorization == "" {
		return errorx.New(errorx.KindValidation, "authorization 不能为空")
	}
	if c.Sign == "" || c.SignTimestamp == "" {
		return errorx.New(errorx.KindValidation, "签名与签名时间戳不能为空")
	}
	return nil
}

// Merge 合并新凭证：空字段沿用旧值
// 签名过期后外部通常只补发签名对，authorization 继续有效
func (c Credentials) Merge(fresh Credentials) Credentials {
	merged := c
	if fresh.Authorization != "" {
		merged.Authorization = fresh.Authorization
	}
	if fresh.Sign != "" {
		merged.Sign = fresh.Sign
	}
	if fresh.SignTimestamp != "" {
		merged.SignTimestamp = fresh.SignTimestamp
	}
	return merged
}
