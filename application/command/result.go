/*
Package command defines the result every command handler returns.

A failed result carries the notifications that explain why nothing was
persisted; a successful one carries a typed projection of the new state.
Both serialise to {"success", "message", "data"}.
*/
package command

import (
	"encoding/json"

	"store/pkg/notification"
)

// Messages shared by the handlers.
const (
	MessageInvalid = "notifications were generated, please check the data provided"
)

// Result is the outcome of one command. Data is set only when Success is true;
// Notifications only when it is false.
type Result[T any] struct {
	Success       bool
	Message       string
	Data          T
	Notifications []notification.Notification
}

func Succeeded[T any](message string, data T) *Result[T] {
	return &Result[T]{Success: true, Message: message, Data: data}
}

func Failed[T any](message string, notifications []notification.Notification) *Result[T] {
	return &Result[T]{Success: false, Message: message, Notifications: notifications}
}

// Invalid is Failed with the standard message.
func Invalid[T any](source notification.Validatable) *Result[T] {
	return Failed[T](MessageInvalid, source.Notifications())
}

type wireResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// MarshalJSON puts the projection or the notification list under "data".
func (r Result[T]) MarshalJSON() ([]byte, error) {
	w := wireResult{Success: r.Success, Message: r.Message}
	if r.Success {
		w.Data = r.Data
	} else {
		notes := r.Notifications
		if notes == nil {
			notes = []notification.Notification{}
		}
		w.Data = notes
	}
	return json.Marshal(w)
}
