package credential

import (
	"github.com/xixiwenxuanhe/order-management/internal/app/domains/modules/mdcredential"
	"github.com/xixiwenxuanhe/order-management/internal/app/pkg/logger"
)

// CredentialHandler 凭证刷新 HTTP 处理器
type CredentialHandler struct {
	credModule *mdcredential.CredentialModule
	log        logger.Logger
}

// NewCredentialHandler 创建凭证处理器实例
func NewCredentialHandler(credModule *mdcredential.CredentialModule, log logger.Logger) *CredentialHandler {
	return &CredentialHandler{
		credModule: credModule,
		log:        log,
	}
}
