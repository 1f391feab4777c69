// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"

	"roster/internal/domain/entity"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via gen_random_uuid().
// The unique index on login is the serialization point for concurrent creates:
// two inserts with the same login cannot both succeed.
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Login        string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Gender       int16      `gorm:"type:smallint;not null"`
	Birthday     *time.Time `gorm:"type:date"`
	Admin        bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time  `gorm:"not null"`
	CreatedBy    string     `gorm:"type:varchar(64);not null"`
	ModifiedAt   time.Time  `gorm:"not null"`
	ModifiedBy   string     `gorm:"type:varchar(64);not null"`
	RevokedAt    *time.Time `gorm:"index"`
	RevokedBy    *string    `gorm:"type:varchar(64)"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *AccountModel) ToDomain() *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Login:        m.Login,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Gender:       entity.Gender(m.Gender),
		Birthday:     m.Birthday,
		Admin:        m.Admin,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
		ModifiedAt:   m.ModifiedAt,
		ModifiedBy:   m.ModifiedBy,
		RevokedAt:    m.RevokedAt,
		RevokedBy:    m.RevokedBy,
	}
}

// FromDomain maps a pure domain entity to the persistence model.
func FromDomain(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:           account.ID,
		Login:        account.Login,
		PasswordHash: account.PasswordHash,
		Name:         account.Name,
		Gender:       int16(account.Gender),
		Birthday:     account.Birthday,
		Admin:        account.Admin,
		CreatedAt:    account.CreatedAt,
		CreatedBy:    account.CreatedBy,
		ModifiedAt:   account.ModifiedAt,
		ModifiedBy:   account.ModifiedBy,
		RevokedAt:    account.RevokedAt,
		RevokedBy:    account.RevokedBy,
	}
}
