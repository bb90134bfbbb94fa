/*
Package notification collects validation failures instead of raising them.

Value objects, entities, commands and handlers embed a Notifiable and record
every rule they break as a (key, message) pair. Callers merge the notifications
of the pieces they compose and decide on validity once, at the end.
*/
package notification

import "strings"

// Notification is a single validation failure.
type Notification struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// New builds a Notification.
func New(key, message string) Notification {
	return Notification{Key: key, Message: message}
}

func (n Notification) String() string {
	return n.Key + ": " + n.Message
}

// Validatable is anything that reports notifications.
type Validatable interface {
	Notifications() []Notification
	IsValid() bool
}

// Notifiable accumulates notifications. The zero value is ready to use.
// Notifications are only ever appended; nothing is removed.
type Notifiable struct {
	notifications []Notification
}

// AddNotification appends one notification.
func (n *Notifiable) AddNotification(key, message string) {
	n.notifications = append(n.notifications, Notification{Key: key, Message: message})
}

// AddNotifications appends the notifications of every source, in order.
// Nil sources are skipped.
func (n *Notifiable) AddNotifications(sources ...Validatable) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		n.notifications = append(n.notifications, src.Notifications()...)
	}
}

// AddNotificationList appends a raw slice of notifications.
func (n *Notifiable) AddNotificationList(list []Notification) {
	n.notifications = append(n.notifications, list...)
}

// Notifications returns a copy of the accumulated notifications.
func (n *Notifiable) Notifications() []Notification {
	out := make([]Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// IsValid reports whether no notification has been recorded.
func (n *Notifiable) IsValid() bool {
	return len(n.notifications) == 0
}

// Keys returns the key of each notification in order.
func Keys(list []Notification) []string {
	keys := make([]string, len(list))
	for i, item := range list {
		keys[i] = item.Key
	}
	return keys
}

// Join renders a list of notifications as "key: message; key: message".
func Join(list []Notification) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = item.String()
	}
	return strings.Join(parts, "; ")
}
