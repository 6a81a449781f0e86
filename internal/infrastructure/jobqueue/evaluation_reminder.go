package jobqueue

import (
	"context"
	"time"
)

const evaluationReminderPath = "/v1/internal/jobs/evaluation-reminder"

// EvaluationReminderScheduler enqueues a delayed nudge that fires after a
// match's kickoff so the organizer remembers to submit the evaluation.
type EvaluationReminderScheduler struct {
	publisher *Publisher
	grace     time.Duration
	now       func() time.Time
}

// NewEvaluationReminderScheduler delays the reminder until grace past the
// scheduled kickoff; the match cannot be evaluated before it is played.
func NewEvaluationReminderScheduler(publisher *Publisher, grace time.Duration) *EvaluationReminderScheduler {
	if grace <= 0 {
		grace = 2 * time.Hour
	}
	return &EvaluationReminderScheduler{
		publisher: publisher,
		grace:     grace,
		now:       time.Now,
	}
}

func (s *EvaluationReminderScheduler) ScheduleEvaluationReminder(ctx context.Context, matchID string, at time.Time) error {
	delay := at.Add(s.grace).Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	payload := map[string]string{"match_id": matchID}
	return s.publisher.Enqueue(ctx, evaluationReminderPath, payload, delay, "evaluation-reminder-"+matchID)
}
