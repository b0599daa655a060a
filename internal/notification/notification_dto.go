package notification

type NotificationResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ReferenceID string  `json:"reference_id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Read        bool    `json:"read"`
	ReadAt      *string `json:"read_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
