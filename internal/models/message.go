package models

import "time"

type MessageType int

const (
	User MessageType = iota
	Assistant
)

func (t MessageType) String() string {
	if t == Assistant {
		return "assistant"
	}
	return "user"
}

// Message is an immutable transcript entry.
type Message struct {
	Content string
	Type    MessageType
	Rich    bool // rendered with markup formatting (content is still escaped first)
}

// Placeholder marks an in-flight question until its answer or error arrives.
type Placeholder struct {
	ID        string
	CreatedAt time.Time
}

// Entry is one row of the transcript view: either a message or a loading placeholder.
type Entry struct {
	Message     Message
	Placeholder *Placeholder
}

func (e Entry) IsLoading() bool {
	return e.Placeholder != nil
}
