package models

import "time"

// AccountKind selects which credential table an account lives in. Users and
// admins are disjoint record kinds; the same email may exist in both.
type AccountKind string

const (
	KindUser  AccountKind = "user"
	KindAdmin AccountKind = "admin"
)

// Valid reports whether the kind names a known credential table.
func (k AccountKind) Valid() bool {
	return k == KindUser || k == KindAdmin
}

// Account represents a login credential stored in the users or admins table.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"full_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AccountInfo describes an account in responses.
type AccountInfo struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Kind     AccountKind `json:"kind"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
