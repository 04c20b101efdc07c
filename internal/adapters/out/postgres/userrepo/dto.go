// Package userrepo persists user accounts.
package userrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the users table. Role is stored by name.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	Image        string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Image:        u.Image(),
		CreatedAt:    u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Name, dto.Email, dto.PasswordHash, role, dto.Image, dto.CreatedAt)
}
