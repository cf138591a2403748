package domain

import "time"

type Category struct {
	Id          CategoryId `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}
