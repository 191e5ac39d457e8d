package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is a statically configured login identity.
type Account struct {
	Identifier string `json:"usuario" yaml:"usuario"`
	Secret     string `json:"-" yaml:"password"`
	Role       Role   `json:"tipo" yaml:"tipo"`
}
