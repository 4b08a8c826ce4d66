package models

type Subscriber struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	IsActive     bool   `json:"isActive"`
	SubscribedAt string `json:"subscribedAt"`
}

type NewsletterStats struct {
	TotalSubscribers    int `json:"totalSubscribers"`
	ActiveSubscribers   int `json:"activeSubscribers"`
	InactiveSubscribers int `json:"inactiveSubscribers"`
}
