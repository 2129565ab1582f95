// internal/workflow/states.go
package workflow

import (
	"fmt"
	"time"
)

// State is a named stage of the quote recommendation session.
type State string

const (
	StateIdle                     State = "idle"
	StateRepresentativeAssignment State = "representative-assignment"
	StateQuoteIntake              State = "quote-intake"
	StateThankYou                 State = "thank-you"
	StateComparison               State = "comparison"
	StateRecommendationShown      State = "recommendation-shown"
	StateRepresentativeShown      State = "representative-shown"
	StateFinalConfirmation        State = "final-confirmation"
)

// EffectType identifies a side effect the hosting UI layer must carry out
// after a transition.
type EffectType string

const (
	// EffectMatchingTimer asks the UI to wait for Delay before firing
	// MatchingComplete.
	EffectMatchingTimer EffectType = "matching-timer"
	// EffectQuotesGenerated signals that fresh quotes are available on the session.
	EffectQuotesGenerated EffectType = "quotes-generated"
	// EffectShowRecommendation signals that the recommendation modal should open.
	EffectShowRecommendation EffectType = "show-recommendation"
	// EffectShowRepresentative signals that the assigned representative should
	// be presented.
	EffectShowRepresentative EffectType = "show-representative"
	// EffectSessionCleared signals that transient state was discarded.
	EffectSessionCleared EffectType = "session-cleared"
)

// Effect is a side-effect descriptor returned by a transition. The session
// never executes timers or rendering itself.
type Effect struct {
	Type    EffectType
	Delay   time.Duration
	Payload map[string]interface{}
}

// InvalidTransitionError reports an event fired in a state that does not
// accept it. The session state is left unchanged.
type InvalidTransitionError struct {
	From  State
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid in state %q", e.Event, e.From)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	_, ok := err.(*InvalidTransitionError)
	return ok
}
