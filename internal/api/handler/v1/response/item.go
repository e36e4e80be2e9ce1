package response

import "time"

const ItemDeletedMessage = "Item deleted"

type Message struct {
	Message string `json:"message" example:"Item deleted"`
}

type Health struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
}
