package models

import "github.com/shopspring/decimal"

// Budget represents the spending limit a user set for one month (YYYY-MM).
type Budget struct {
	Owned
	Month  string          `gorm:"size:7;not null" json:"month"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
}
