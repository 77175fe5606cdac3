package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes - длина токена до hex-кодирования. Итоговая строка - 48 символов.
const tokenBytes = 24

// generateToken возвращает криптостойкий токен для ссылки оценки
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// generateRedirectID возвращает короткий идентификатор трекинговой ссылки
func generateRedirectID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate redirect id: %w", err)
	}
	return "r-" + hex.EncodeToString(buf), nil
}
