package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"phishguard-api/classifier"
	"phishguard-api/features"
	"phishguard-api/models"
)

// PhishingWarning is the verdict for every URL classified as phishing.
const PhishingWarning = "The website is detected as phishing and not safe to go."

const suggestionFormat = "\nYou might want to visit the legitimate site: %s"

// RecordStore appends prediction rows.
type RecordStore interface {
	Append(ctx context.Context, p *models.Prediction) (uint, error)
}

// AuditSink records phishing URLs outside the database.
type AuditSink interface {
	Append(url string) error
}

// SuggestionLookup maps a phishing URL to its legitimate counterpart.
type SuggestionLookup interface {
	Get(url string) (string, bool)
}

// EventPublisher broadcasts stored predictions.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// PredictionResult is what a caller gets back from ClassifyAndRecord.
type PredictionResult struct {
	ID                   uint             `json:"id"`
	URL                  string           `json:"url"`
	Label                classifier.Label `json:"label"`
	Probability          float64          `json:"probability"`
	Verdict              string           `json:"verdict"`
	LegitimateSuggestion *string          `json:"legitimate_suggestion"`
}

// PredictionEvent is published after a prediction has been stored.
type PredictionEvent struct {
	ID                   uint      `json:"id"`
	URL                  string    `json:"url"`
	Label                string    `json:"label"`
	Probability          float64   `json:"probability"`
	Verdict              string    `json:"verdict"`
	LegitimateSuggestion *string   `json:"legitimate_suggestion,omitempty"`
	TS                   time.Time `json:"ts"`
}

type PipelineOptions struct {
	// Channel is the pub/sub channel for PredictionEvents; empty disables publishing.
	Channel string
	// PersistSuggestion stores the looked-up suggestion on the new row instead
	// of leaving legitimate_suggestion empty.
	PersistSuggestion bool
}

// Pipeline classifies a URL and records the outcome. Its collaborators are
// loaded once at startup and shared read-only between requests.
type Pipeline struct {
	extractor features.Extractor
	model     classifier.Model
	store     RecordStore
	audit     AuditSink
	mapping   SuggestionLookup
	events    EventPublisher
	opts      PipelineOptions
}

func NewPipeline(
	extractor features.Extractor,
	model classifier.Model,
	store RecordStore,
	audit AuditSink,
	mapping SuggestionLookup,
	events EventPublisher,
	opts PipelineOptions,
) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		model:     model,
		store:     store,
		audit:     audit,
		mapping:   mapping,
		events:    events,
		opts:      opts,
	}
}

// ClassifyAndRecord runs one submission end to end. Nothing is retried.
//
// The row is written before the audit file. An *AuditWriteError therefore
// comes back together with a non-nil result: the verdict is already stored
// and is not rolled back.
func (p *Pipeline) ClassifyAndRecord(ctx context.Context, url string) (*PredictionResult, error) {
	start := time.Now()
	defer func() {
		pipelineDuration.Observe(time.Since(start).Seconds())
	}()

	res, err := p.classifyAndRecord(ctx, url)
	if err != nil {
		failuresTotal.WithLabelValues(ErrorKind(err)).Inc()
	}
	return res, err
}

func (p *Pipeline) classifyAndRecord(ctx context.Context, url string) (*PredictionResult, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	submissionsTotal.Inc()

	vec, err := p.extractor.Extract(ctx, url)
	if err != nil {
		return nil, &ExtractionError{URL: url, Err: err}
	}
	if err := vec.CheckLen(); err != nil {
		return nil, &ContractViolation{Err: err}
	}

	out, err := p.model.Predict(vec)
	if err != nil {
		return nil, &ContractViolation{Err: err}
	}

	verdict, err := FormatVerdict(out)
	if err != nil {
		return nil, &ContractViolation{Err: err}
	}
	verdictsTotal.WithLabelValues(out.Label.String()).Inc()

	var suggestion *string
	if out.Label == classifier.Phishing && p.mapping != nil {
		if s, ok := p.mapping.Get(url); ok {
			suggestion = &s
		}
	}

	record := &models.Prediction{URL: url, Verdict: verdict}
	if p.opts.PersistSuggestion {
		record.LegitimateSuggestion = suggestion
	}
	id, err := p.store.Append(ctx, record)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	if suggestion != nil {
		verdict += fmt.Sprintf(suggestionFormat, *suggestion)
		suggestionsTotal.Inc()
	}

	res := &PredictionResult{
		ID:                   id,
		URL:                  url,
		Label:                out.Label,
		Probability:          round2(out.Probabilities.Legitimate),
		Verdict:              verdict,
		LegitimateSuggestion: suggestion,
	}

	var auditErr error
	if out.Label == classifier.Phishing && p.audit != nil {
		if err := p.audit.Append(url); err != nil {
			auditErr = &AuditWriteError{URL: url, Err: err}
		}
	}

	p.publish(ctx, res)
	return res, auditErr
}

func (p *Pipeline) publish(ctx context.Context, res *PredictionResult) {
	if p.events == nil || p.opts.Channel == "" {
		return
	}
	ev := PredictionEvent{
		ID:                   res.ID,
		URL:                  res.URL,
		Label:                res.Label.String(),
		Probability:          res.Probability,
		Verdict:              res.Verdict,
		LegitimateSuggestion: res.LegitimateSuggestion,
		TS:                   time.Now().UTC(),
	}
	if err := p.events.Publish(ctx, p.opts.Channel, ev); err != nil {
		eventsFailed.Inc()
		log.Printf("publish prediction %d failed: %v", res.ID, err)
		return
	}
	eventsPublished.Inc()
}

// FormatVerdict renders the user-facing text for a model decision. The safety
// percentage is the phishing-class probability, as the page has always shown it.
func FormatVerdict(out classifier.Output) (string, error) {
	switch out.Label {
	case classifier.Legitimate:
		return fmt.Sprintf("It is %.2f%% safe to go", out.Probabilities.Phishing*100), nil
	case classifier.Phishing:
		return PhishingWarning, nil
	default:
		return "", errors.New("unknown label " + out.Label.String())
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
