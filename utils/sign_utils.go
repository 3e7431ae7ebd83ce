package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignValue 使用 HMAC-SHA256 为值生成 "value.signature" 形式的签名串，
// 用于会话 Cookie 防篡改
func SignValue(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return value + "." + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignedValue 校验签名串并返回原始值，签名不匹配时返回 false
func VerifySignedValue(signed, secret string) (string, bool) {
	idx := strings.LastIndex(signed, ".")
	if idx <= 0 || idx == len(signed)-1 {
		return "", false
	}
	value := signed[:idx]
	if !hmac.Equal([]byte(SignValue(value, secret)), []byte(signed)) {
		return "", false
	}
	return value, true
}
