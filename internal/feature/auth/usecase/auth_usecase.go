// Package usecase はオペレーター認証のビジネスロジックを実装します。
//
// 読み取りAPIは単一のオペレーターアカウントで保護します。資格情報は
// 環境変数で与えられ（名前とbcryptハッシュ）、ユーザーテーブルは
// 持ちません。ストアは分析用の読み取り専用サーフェスであり、
// ユーザー管理はこのリポジトリの責務外です。
package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"quant_backend/internal/feature/auth/domain"
	jwtmw "quant_backend/internal/platform/jwt"
)

// AuthUsecase はオペレーター認証のユースケースを定義します。
type AuthUsecase struct {
	gen          jwtmw.Generator
	operator     string // 許可されたオペレーター名
	passwordHash string // bcryptハッシュ
}

// NewAuthUsecase は新しい AuthUsecase を作成します。
func NewAuthUsecase(gen jwtmw.Generator, operator, passwordHash string) *AuthUsecase {
	return &AuthUsecase{gen: gen, operator: operator, passwordHash: passwordHash}
}

// Login はオペレーターを認証し、成功時にJWTトークンを返します。
func (au *AuthUsecase) Login(_ context.Context, name, password string) (string, error) {
	if au.operator == "" || au.passwordHash == "" {
		return "", domain.ErrNotConfigured
	}
	if name != au.operator {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(au.passwordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return au.gen.GenerateToken(name)
}
