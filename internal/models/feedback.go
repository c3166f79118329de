package models

import "time"

const (
	MaxCommentLength = 500
	MaxComments      = 200
	MaxRatings       = 500
)

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating is one user's immutable score (0-100) for a device.
type Rating struct {
	UserID    string    `json:"userId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func CommentsKey(deviceID string) string {
	return "comments:" + deviceID
}

func RatingsKey(deviceID string) string {
	return "ratings:" + deviceID
}
