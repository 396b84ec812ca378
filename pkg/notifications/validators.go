package notifications

type ListNotificationsQuery struct {
	Username string `query:"username" json:"username"`
}

type MarkAllReadPayload struct {
	Username string `json:"username"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}
