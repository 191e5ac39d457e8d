package domain

import (
	"errors"
	"strings"
)

// Role partitions accounts and the decisions they may see.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleNormal Role = "normal"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleNormal
}

var ErrDecisionNotFound = errors.New("decision not found")

// Decision is a text entry optionally annotated with an outcome and a success
// flag. Role is copied from the creating session and never changes.
type Decision struct {
	ID        string  `json:"id" bson:"_id"`
	Text      string  `json:"texto" bson:"texto"`
	Result    *string `json:"resultado" bson:"resultado"`
	Succeeded *bool   `json:"exito" bson:"exito"`
	Role      Role    `json:"tipo" bson:"tipo"`
}

// NormalizeText trims surrounding whitespace. An empty return value means the
// text is not acceptable as decision text.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}
