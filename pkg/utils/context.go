package utils

import (
	"context"
)

type contextKey string

const (
	UserPhoneKey contextKey = "user_phone"
	TokenKey     contextKey = "token"
)

// GetUserPhoneFromContext returns the phone number of the authenticated
// user, as set by the auth middleware.
func GetUserPhoneFromContext(ctx context.Context) (string, bool) {
	phoneVal := ctx.Value(UserPhoneKey)
	if phoneVal == nil {
		return "", false
	}

	phone, ok := phoneVal.(string)
	if !ok || phone == "" {
		return "", false
	}

	return phone, true
}

func SetUserContext(ctx context.Context, phone string) context.Context {
	return context.WithValue(ctx, UserPhoneKey, phone)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
