package model

type RevokedToken struct {
	JTI       string `json:"jti"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
	Ctime     int64  `json:"ctime"`
}
