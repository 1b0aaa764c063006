package models

const (
	DefaultProfileName   = "User"
	DefaultProfileAvatar = "😊"
)

type Profile struct {
	UserID string
	Name   string
	Avatar string
}

type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}
