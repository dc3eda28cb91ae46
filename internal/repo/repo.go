package repo

import (
	"errors"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

var (
	ErrUserExists       = errors.New("user already exists")
	ErrReviewExists     = errors.New("review already exists")
	ErrAlreadyPaid      = errors.New("order already paid")
	ErrNotPaid          = errors.New("order not paid")
	ErrAlreadyDelivered = errors.New("order already delivered")
)
