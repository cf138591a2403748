package domain

import "time"

type User struct {
	Id          UserId    `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarUrl   string    `json:"avatar_url"`
	Exp         int       `json:"exp"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity is what a verified token tells us about the caller.
type Identity struct {
	Id          UserId
	DisplayName string
	AvatarUrl   string
}

// AuthorSnapshot is joined onto threads and replies at read time.
type AuthorSnapshot struct {
	DisplayName string `json:"display_name"`
	AvatarUrl   string `json:"avatar_url"`
	Exp         int    `json:"exp"`
}

type LevelProgress struct {
	Level        int     `json:"level"`
	ExpInLevel   int     `json:"exp_in_level"`
	ExpForLevel  int     `json:"exp_for_level"`
	NextLevelExp int     `json:"next_level_exp"`
	Percent      float64 `json:"percent"`
}

type UserStats struct {
	UserId         UserId        `json:"user_id"`
	Exp            int           `json:"exp"`
	ThreadCount    int           `json:"thread_count"`
	ReplyCount     int           `json:"reply_count"`
	CendolGiven    int           `json:"cendol_given"`
	BataGiven      int           `json:"bata_given"`
	CendolReceived int           `json:"cendol_received"`
	BataReceived   int           `json:"bata_received"`
	Level          LevelProgress `json:"level"`
}
