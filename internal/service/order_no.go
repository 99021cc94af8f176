package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/vastra-shop/internal/constants"
)

const orderNoAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNo 生成对外订单号：ORD- + 8 位 [0-9A-Z]，普通订单与定制订单共用
func generateOrderNo() (string, error) {
	var builder strings.Builder
	builder.Grow(len(constants.OrderNoPrefix) + constants.OrderNoTokenSize)
	builder.WriteString(constants.OrderNoPrefix)
	max := big.NewInt(int64(len(orderNoAlphabet)))
	for i := 0; i < constants.OrderNoTokenSize; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(orderNoAlphabet[n.Int64()])
	}
	return builder.String(), nil
}

// isValidOrderNo 校验订单号格式
func isValidOrderNo(orderNo string) bool {
	if !strings.HasPrefix(orderNo, constants.OrderNoPrefix) {
		return false
	}
	token := strings.TrimPrefix(orderNo, constants.OrderNoPrefix)
	if len(token) != constants.OrderNoTokenSize {
		return false
	}
	for i := 0; i < len(token); i++ {
		if strings.IndexByte(orderNoAlphabet, token[i]) < 0 {
			return false
		}
	}
	return true
}
