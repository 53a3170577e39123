package model

const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

type Todo struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
	Complete bool   `json:"complete"`
	Ctime    int64  `json:"ctime"`
	Mtime    int64  `json:"mtime"`
}
