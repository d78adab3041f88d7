package contract

import "context"

type Specialist interface {
	Name() string
	Run(ctx context.Context, req SpecialistRequest) (SpecialistResponse, error)
}

// ConversationAgent answers queries that no specialist claims.
type ConversationAgent interface {
	Answer(ctx context.Context, req SpecialistRequest) (string, error)
}

type Registry interface {
	Conversation() ConversationAgent
	Specialist(tag IntentTag) (Specialist, bool)
}
