package request

import "github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etcred"

// ToCredentials 将 Request DTO 转换为凭证对象
func (r *SyncFetchRequest) ToCredentials() etcred.Credentials {
	return etcred.Credentials{
		Authorization: r.Authorization,
		Sign:          r.RequestSign,
		SignTimestamp: r.RequestTimestamp,
	}
}

// ToCredentials 将 Request DTO 转换为凭证对象
func (r *OrderDetailRequest) ToCredentials() etcred.Credentials {
	return etcred.Credentials{
		Authorization: r.Authorization,
		Sign:          r.RequestSign,
		SignTimestamp: r.RequestTimestamp,
	}
}

// ToCredentials 将 Request DTO 转换为凭证对象
func (r *RefreshCredentialsRequest) ToCredentials() etcred.Credentials {
	return etcred.Credentials{
		Authorization: r.Authorization,
		Sign:          r.RequestSign,
		SignTimestamp: r.RequestTimestamp,
	}
}
