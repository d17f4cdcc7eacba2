// Package contact validates contact form submissions and forwards them to the
// content source, keeping a local record when forwarding fails.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/metrics"
	"github.com/Project-Narvex/narvex-web/internal/observability"
)

// MaxBodyBytes caps the size of a submission body.
const MaxBodyBytes = 64 << 10

const (
	outcomeForwarded = "forwarded"
	outcomeLocal     = "local"
	sourceLocal      = "local"
)

// RequiredFields lists the mandatory fields in the order they are reported.
var RequiredFields = []string{"name", "email", "phone", "service", "budget", "timeline", "message"}

// Submission is the contact form payload. Company is optional.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company,omitempty"`
	Service  string `json:"service"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	Message  string `json:"message"`
}

// Payload is the request body as received. Numbers and booleans are accepted
// for any field so that, for example, a numeric phone counts as present.
type Payload struct {
	Name     cms.FlexString `json:"name"`
	Email    cms.FlexString `json:"email"`
	Phone    cms.FlexString `json:"phone"`
	Company  cms.FlexString `json:"company"`
	Service  cms.FlexString `json:"service"`
	Budget   cms.FlexString `json:"budget"`
	Timeline cms.FlexString `json:"timeline"`
	Message  cms.FlexString `json:"message"`
}

// Submission converts the payload to its text form.
func (p Payload) Submission() Submission {
	return Submission{
		Name:     p.Name.String(),
		Email:    p.Email.String(),
		Phone:    p.Phone.String(),
		Company:  p.Company.String(),
		Service:  p.Service.String(),
		Budget:   p.Budget.String(),
		Timeline: p.Timeline.String(),
		Message:  p.Message.String(),
	}
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:     strings.TrimSpace(s.Name),
		Email:    strings.TrimSpace(s.Email),
		Phone:    strings.TrimSpace(s.Phone),
		Company:  strings.TrimSpace(s.Company),
		Service:  strings.TrimSpace(s.Service),
		Budget:   strings.TrimSpace(s.Budget),
		Timeline: strings.TrimSpace(s.Timeline),
		Message:  strings.TrimSpace(s.Message),
	}
}

// Missing returns the required fields that are empty after trimming, in
// RequiredFields order. The result is never nil.
func (s Submission) Missing() []string {
	values := map[string]string{
		"name":     s.Name,
		"email":    s.Email,
		"phone":    s.Phone,
		"service":  s.Service,
		"budget":   s.Budget,
		"timeline": s.Timeline,
		"message":  s.Message,
	}
	missing := []string{}
	for _, f := range RequiredFields {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ValidationError reports missing required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Record is the locally fabricated copy of a submission that could not be
// forwarded.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Submission
	Source string `json:"source"`
}

// Forwarder stores a submission upstream. *cms.Client implements it.
type Forwarder interface {
	CreateContactSubmission(ctx context.Context, v any) (cms.Envelope, error)
}

var _ Forwarder = (*cms.Client)(nil)

// Result is the outcome of Submit. Data is the stored document, either as
// returned upstream or as a local Record.
type Result struct {
	Data      any
	Forwarded bool
}

// Deps bundles collaborators required to construct a Service.
type Deps struct {
	Forwarder   Forwarder
	Logger      *zap.Logger
	Metrics     *metrics.Provider
	Clock       func() time.Time
	IDGenerator func() string
}

// Service handles contact submissions.
type Service struct {
	forwarder Forwarder
	logger    *zap.Logger
	metrics   *metrics.Provider
	clock     func() time.Time
	newID     func() string
}

// NewService wires deps into a Service.
func NewService(deps Deps) (*Service, error) {
	if deps.Forwarder == nil {
		return nil, errors.New("contact service: forwarder is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		forwarder: deps.Forwarder,
		logger:    logger,
		metrics:   deps.Metrics,
		clock:     clock,
		newID:     newID,
	}, nil
}

// Submit validates s and forwards it. Only validation fails: a forwarding
// error yields a local Record instead.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	sub = sub.Normalize()
	if missing := sub.Missing(); len(missing) > 0 {
		return Result{}, &ValidationError{Fields: missing}
	}

	logger := s.log(ctx)
	env, err := s.forwarder.CreateContactSubmission(ctx, sub)
	if err == nil {
		s.metrics.ContactForward(outcomeForwarded)
		return Result{Data: forwardedData(env, sub), Forwarded: true}, nil
	}

	logger.Warn("contact forward failed, keeping local record",
		zap.Error(err),
		zap.String("service", sub.Service),
	)
	s.metrics.ContactForward(outcomeLocal)
	return Result{Data: Record{
		ID:         s.newID(),
		CreatedAt:  s.clock().UTC(),
		Submission: sub,
		Source:     sourceLocal,
	}}, nil
}

// forwardedData returns the upstream document, or the submission itself when
// the upstream body carried no data.
func forwardedData(env cms.Envelope, sub Submission) any {
	raw := strings.TrimSpace(string(env.Data))
	if raw == "" || raw == "null" {
		return sub
	}
	return json.RawMessage(env.Data)
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	if l := observability.FromContext(ctx); l != observability.NoopLogger() {
		return l
	}
	return s.logger
}
