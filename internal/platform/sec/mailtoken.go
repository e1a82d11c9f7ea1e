// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, roles and the request principal.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. The mail verification token is an HS256 JWT whose subject
// is the user id and whose "eml" claim pins the address it was sent to.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidMailToken is returned for malformed, tampered or expired tokens.
var ErrInvalidMailToken = errors.New("sec: invalid mail token")

// MailClaims is the payload of a mail verification token.
type MailClaims struct {
	jwt.RegisteredClaims

	Email string `json:"eml"`
}

// MailTokenService signs and verifies e-mail verification tokens.
type MailTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewMailTokenService creates a new MailTokenService.
func NewMailTokenService(secret, issuer string, ttl time.Duration) (*MailTokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: mail token secret is empty")
	}
	return &MailTokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token for the given user.
func (service *MailTokenService) Issue(userID, email string) (string, error) {
	currentTime := service.now()
	claims := MailClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign mail token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of a token and returns its claims.
func (service *MailTokenService) Verify(tokenString string) (*MailClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MailClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMailToken, err)
	}

	claims, ok := token.Claims.(*MailClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidMailToken
	}
	return claims, nil
}
