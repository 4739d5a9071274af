package domain

import (
	"strconv"
	"strings"
	"time"
)

// Client to server events on the realtime channel
const (
	EventJoinClass  = "joinClass"
	EventLeaveClass = "leaveClass"
)

// Server to client events on the realtime channel
const (
	EventHomeworkCreated = "homeworkCreated"
	EventHomeworkUpdated = "homeworkUpdated"
	EventHomeworkDeleted = "homeworkDeleted"
	EventNotification    = "notification"
	EventJoinedClass     = "joinedClass"
	EventLeftClass       = "leftClass"
	EventError           = "error"
)

// Event is the frame exchanged on the realtime channel
type Event struct {
	Name string    `json:"event"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// NewEvent creates an event stamped with the current time
func NewEvent(name string, data any) *Event {
	return &Event{
		Name: name,
		Data: data,
		At:   time.Now().UTC(),
	}
}

// HomeworkPayload is the body of homeworkCreated and homeworkUpdated
type HomeworkPayload struct {
	Homework *Homework `json:"homework"`
}

// HomeworkDeletedPayload is the body of homeworkDeleted
type HomeworkDeletedPayload struct {
	ID uint `json:"id"`
}

// UserRoomPrefix marks private user rooms. Class ids carrying it are
// refused on the realtime channel.
const UserRoomPrefix = "user:"

// UserRoom is the private room of a single user. Only the server joins it,
// for a connection that presented that user's token.
func UserRoom(userID uint) string {
	return UserRoomPrefix + strconv.FormatUint(uint64(userID), 10)
}

// IsUserRoom reports whether room is a private user room
func IsUserRoom(room string) bool {
	return strings.HasPrefix(room, UserRoomPrefix)
}
