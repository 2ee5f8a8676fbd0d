package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Principal identifica o chamador autenticado de uma rota protegida.
type Principal struct {
	Subject string
	Role    string
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse valida um token bearer HS256 e extrai o principal.
func (p *Parser) Parse(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Principal{}, fmt.Errorf("empty token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}

	principal := Principal{}
	if sub, ok := claims["sub"].(string); ok {
		principal.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		principal.Role = role
	}
	if principal.Subject == "" {
		return Principal{}, fmt.Errorf("token missing subject")
	}
	return principal, nil
}
