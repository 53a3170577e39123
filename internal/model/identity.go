package model

// AvatarPayload is the transport form of an avatar: raw bytes are never
// forwarded inside the JSON envelope, only their base64 encoding.
type AvatarPayload struct {
	Data        string `json:"data"`
	ContentType string `json:"content_type"`
}

// Identity is the resolved caller attached to a request by the auth
// middleware and returned by the profile endpoints.
type Identity struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Avatar AvatarPayload `json:"image"`
	Ctime  int64         `json:"ctime"`
	Mtime  int64         `json:"mtime"`
}
