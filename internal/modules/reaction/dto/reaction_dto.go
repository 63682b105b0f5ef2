package dto

type ReactRequest struct {
	ReactionType string `json:"reaction_type"`
}
