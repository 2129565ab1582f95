// internal/workflow/session.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/validation"
	"insurance-quote-workers/internal/models"
	assignrepresentative "insurance-quote-workers/internal/workers/advisory/assign-representative"
	recordquoteinterest "insurance-quote-workers/internal/workers/advisory/record-quote-interest"
	generatequotes "insurance-quote-workers/internal/workers/quote/generate-quotes"
	recommendquote "insurance-quote-workers/internal/workers/quote/recommend-quote"
)

// Interfaces over the worker handler cores so a session can drive them
// directly without going through the job broker.
type QuoteGenerator interface {
	Execute(ctx context.Context, input *generatequotes.Input) (*generatequotes.Output, error)
}

type RecommendationScorer interface {
	Execute(ctx context.Context, input *recommendquote.Input) (*recommendquote.Output, error)
}

type RepresentativeAssigner interface {
	Execute(ctx context.Context, input *assignrepresentative.Input) (*assignrepresentative.Output, error)
}

type InterestRecorder interface {
	Execute(ctx context.Context, input *recordquoteinterest.Input) (*recordquoteinterest.Output, error)
}

// SessionConfig holds the session-level knobs. GenerateOnIntake gates whether
// submitting the intake form produces quotes immediately; it ships disabled.
type SessionConfig struct {
	MatchingDelay    time.Duration
	GenerateOnIntake bool
}

var intakeRequiredFields = []string{"name", "surname", "email"}

// Session is the explicit state machine driving one user's recommendation
// flow. It is single-session, single-goroutine state; nothing here survives
// the session.
type Session struct {
	userID string
	config SessionConfig
	state  State
	logger logger.Logger

	generator QuoteGenerator
	scorer    RecommendationScorer
	assigner  RepresentativeAssigner
	recorder  InterestRecorder

	insuranceType   string
	formData        map[string]interface{}
	quotes          []models.Quote
	interestedQuote *models.Quote
	recommendation  *models.QuoteRecommendation
	representative  *models.Representative
	interest        *models.QuoteInterest
	assignment      *models.RepresentativeAssignment
}

func NewSession(
	userID string,
	config SessionConfig,
	generator QuoteGenerator,
	scorer RecommendationScorer,
	assigner RepresentativeAssigner,
	recorder InterestRecorder,
	log logger.Logger,
) *Session {
	return &Session{
		userID:    userID,
		config:    config,
		state:     StateIdle,
		logger:    log.WithFields(map[string]interface{}{"userId": userID}),
		generator: generator,
		scorer:    scorer,
		assigner:  assigner,
		recorder:  recorder,
	}
}

func (s *Session) State() State                                  { return s.state }
func (s *Session) Quotes() []models.Quote                        { return s.quotes }
func (s *Session) Recommendation() *models.QuoteRecommendation   { return s.recommendation }
func (s *Session) Representative() *models.Representative        { return s.representative }
func (s *Session) Interest() *models.QuoteInterest               { return s.interest }
func (s *Session) Assignment() *models.RepresentativeAssignment  { return s.assignment }

// SelectInsuranceType starts the flow from idle and moves to the transient
// matching screen. The returned timer effect tells the UI when to fire
// MatchingComplete.
func (s *Session) SelectInsuranceType(insuranceType string) ([]Effect, error) {
	if s.state != StateIdle {
		return nil, &InvalidTransitionError{From: s.state, Event: "SelectInsuranceType"}
	}

	s.insuranceType = insuranceType
	s.state = StateRepresentativeAssignment

	return []Effect{{
		Type:  EffectMatchingTimer,
		Delay: s.config.MatchingDelay,
	}}, nil
}

// MatchingComplete ends the matching animation and opens the intake form.
func (s *Session) MatchingComplete() ([]Effect, error) {
	if s.state != StateRepresentativeAssignment {
		return nil, &InvalidTransitionError{From: s.state, Event: "MatchingComplete"}
	}

	s.state = StateQuoteIntake
	return nil, nil
}

// SubmitIntakeForm validates the form, normalizes optional cover amounts, and
// moves to the acknowledgement screen. Quote generation from this path only
// runs when GenerateOnIntake is set.
func (s *Session) SubmitIntakeForm(ctx context.Context, formData map[string]interface{}) ([]Effect, error) {
	if s.state != StateQuoteIntake {
		return nil, &InvalidTransitionError{From: s.state, Event: "SubmitIntakeForm"}
	}

	for _, field := range intakeRequiredFields {
		value, ok := formData[field]
		if !ok || value == "" {
			return nil, fmt.Errorf("intake form is missing required field %q", field)
		}
	}

	s.formData = normalizeFormCovers(formData)
	s.state = StateThankYou

	if !s.config.GenerateOnIntake {
		return nil, nil
	}

	output, err := s.generator.Execute(ctx, &generatequotes.Input{
		UserID:        s.userID,
		InsuranceType: s.insuranceType,
		FormData:      s.formData,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quotes on intake: %w", err)
	}

	s.quotes = output.Quotes
	s.logger.Info("quotes generated from intake form", map[string]interface{}{
		"insuranceType": s.insuranceType,
		"quoteCount":    output.QuoteCount,
	})

	return []Effect{{
		Type:    EffectQuotesGenerated,
		Payload: map[string]interface{}{"quoteCount": output.QuoteCount},
	}}, nil
}

// LoadQuotes enters the comparison view with an externally supplied quote
// list, e.g. from the comparison entry point.
func (s *Session) LoadQuotes(insuranceType string, quotes []models.Quote) ([]Effect, error) {
	switch s.state {
	case StateIdle, StateThankYou, StateComparison:
	default:
		return nil, &InvalidTransitionError{From: s.state, Event: "LoadQuotes"}
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("cannot enter comparison with no quotes")
	}

	s.insuranceType = insuranceType
	s.quotes = quotes
	s.state = StateComparison
	return nil, nil
}

// MarkInterested runs the scorer against the loaded quotes and shows the
// recommendation for the quote the user picked.
func (s *Session) MarkInterested(ctx context.Context, quoteID string) ([]Effect, error) {
	if s.state != StateComparison {
		return nil, &InvalidTransitionError{From: s.state, Event: "MarkInterested"}
	}

	quote := s.findQuote(quoteID)
	if quote == nil {
		return nil, fmt.Errorf("quote %q is not in the comparison list", quoteID)
	}

	output, err := s.scorer.Execute(ctx, &recommendquote.Input{
		Quotes:   s.quotes,
		FormData: s.formData,
	})
	if err != nil {
		return nil, fmt.Errorf("score quotes: %w", err)
	}
	if output.Recommendation == nil {
		return nil, fmt.Errorf("no recommendation produced for a non-empty quote list")
	}

	s.interestedQuote = quote
	s.recommendation = output.Recommendation
	s.state = StateRecommendationShown

	return []Effect{{
		Type: EffectShowRecommendation,
		Payload: map[string]interface{}{
			"recommendedQuoteId": output.Recommendation.RecommendedQuote.ID,
			"confidence":         output.Recommendation.Confidence,
		},
	}}, nil
}

// Decide applies the user's choice on the recommendation screen, assigns a
// representative, and records the interest plus the assignment.
func (s *Session) Decide(ctx context.Context, choice models.UserChoice) ([]Effect, error) {
	if s.state != StateRecommendationShown {
		return nil, &InvalidTransitionError{From: s.state, Event: "Decide"}
	}

	assigned, err := s.assigner.Execute(ctx, &assignrepresentative.Input{
		UserID:        s.userID,
		InsuranceType: s.insuranceType,
	})
	if err != nil {
		return nil, fmt.Errorf("assign representative: %w", err)
	}

	recorded, err := s.recorder.Execute(ctx, &recordquoteinterest.Input{
		UserID:           s.userID,
		InterestedQuote:  *s.interestedQuote,
		RecommendedQuote: s.recommendation.RecommendedQuote,
		UserChoice:       choice,
		RepresentativeID: assigned.Representative.ID,
		FormData:         s.formData,
	})
	if err != nil {
		return nil, fmt.Errorf("record quote interest: %w", err)
	}

	s.representative = &assigned.Representative
	s.interest = &recorded.Interest
	s.assignment = recorded.Assignment
	s.state = StateRepresentativeShown

	return []Effect{{
		Type: EffectShowRepresentative,
		Payload: map[string]interface{}{
			"representativeId": assigned.Representative.ID,
			"specialized":      assigned.Specialized,
			"interestStatus":   string(recorded.Interest.Status),
		},
	}}, nil
}

// ConfirmRepresentative acknowledges the assigned representative.
func (s *Session) ConfirmRepresentative() ([]Effect, error) {
	if s.state != StateRepresentativeShown {
		return nil, &InvalidTransitionError{From: s.state, Event: "ConfirmRepresentative"}
	}

	s.state = StateFinalConfirmation
	return nil, nil
}

// Close discards all in-flight transient state with no undo. The loaded quote
// list survives, so the session returns to comparison when quotes remain,
// else to idle.
func (s *Session) Close() ([]Effect, error) {
	switch s.state {
	case StateRecommendationShown, StateRepresentativeShown, StateFinalConfirmation:
	default:
		return nil, &InvalidTransitionError{From: s.state, Event: "Close"}
	}

	s.interestedQuote = nil
	s.recommendation = nil
	s.representative = nil
	s.interest = nil
	s.assignment = nil

	if len(s.quotes) > 0 {
		s.state = StateComparison
	} else {
		s.state = StateIdle
	}

	return []Effect{{Type: EffectSessionCleared}}, nil
}

func (s *Session) findQuote(quoteID string) *models.Quote {
	for i := range s.quotes {
		if s.quotes[i].ID == quoteID {
			return &s.quotes[i]
		}
	}
	return nil
}

// normalizeFormCovers clamps the optional cover amounts nested under
// "optionalCovers" and drops unknown cover lines. The rest of the form is
// passed through untouched.
func normalizeFormCovers(formData map[string]interface{}) map[string]interface{} {
	raw, ok := formData["optionalCovers"].(map[string]interface{})
	if !ok {
		return formData
	}

	covers := make(map[string]float64, len(raw))
	for name, value := range raw {
		if amount, ok := value.(float64); ok {
			covers[name] = amount
		}
	}

	normalized := validation.NormalizeOptionalCovers(covers)
	sanitized := make(map[string]interface{}, len(normalized))
	for name, amount := range normalized {
		sanitized[name] = amount
	}

	formData["optionalCovers"] = sanitized
	return formData
}
