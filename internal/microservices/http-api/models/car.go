package models

import "time"

type Car struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Make      string     `json:"make" gorm:"size:100;not null"`
	Model     string     `json:"model" gorm:"size:100;not null;uniqueIndex:idx_cars_model"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Car) TableName() string {
	return "cars"
}

func (c Car) String() string {
	return c.Make + ": " + c.Model
}
