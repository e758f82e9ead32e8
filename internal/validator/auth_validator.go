package validator

import (
	"errors"
	"regexp"
	"strings"
)

const MinPasswordLength = 6

var (
	// emailの形がおかしい
	ErrInvalidEmail = errors.New("Enter a valid email")

	// パスワードが短い
	ErrWeakPassword = errors.New("Password must be at least 6 characters")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式チェック
func IsEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

func ValidateEmail(email string) error {
	if !IsEmailLike(email) {
		return ErrInvalidEmail
	}
	return nil
}

// 長さだけ見る
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// 登録時の入力チェック。必須チェックは呼び出し側
func ValidateRegister(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
