package usecase

import "github.com/google/uuid"

// Events pushed to a user's live connections.
const (
	EventAssessmentCompleted = "assessment_completed"
	EventResumeAnalyzed      = "resume_analyzed"
	EventInterviewPrepReady  = "interview_prep_ready"
)

// Notifier delivers an event to every live connection of one user.
// Delivery is best effort and never blocks the caller.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any)
}

type noopNotifier struct{}

func (noopNotifier) Notify(uuid.UUID, string, any) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
