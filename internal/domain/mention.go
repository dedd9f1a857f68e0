package domain

// Mention is a resolved @-token from message text.
type Mention struct {
	Token  string `json:"token"`
	UserID UserID `json:"user_id"`
}
