package model

import "time"

// User represents the subset of X user fields the tool uses.
type User struct {
	ID             string
	Username       string
	Name           string
	Description    string
	CreatedAt      time.Time
	FollowersCount int
	FollowingCount int
	TweetCount     int
	ListedCount    int
	Verified       bool
	URL            string
}

// Tweet represents the subset of X tweet fields the tool uses.
type Tweet struct {
	ID           string
	AuthorID     string
	Text         string
	CreatedAt    time.Time
	LikeCount    int
	ReplyCount   int
	RetweetCount int
	QuoteCount   int
	Language     string
	HasMedia     bool
}
