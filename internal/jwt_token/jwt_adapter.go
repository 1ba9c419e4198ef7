package jwttoken

import (
	"inu/internal/platform/middleware"
)

// JWTServiceAdapter exposes JWTService to the auth middleware.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{Account: claims.Account(), TokenID: claims.ID}, nil
}
