package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows to be not found")
	}
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unexpected not found for arbitrary error")
	}
}

func TestMatchEvaluationDocument(t *testing.T) {
	nine := 9
	evaluation := &match.Evaluation{
		SubmittedAt: time.Date(2026, time.March, 8, 10, 0, 0, 0, time.UTC),
		EvaluatorID: "organizer",
		Records: []match.EvaluationRecord{
			{PlayerID: "p-1", Tags: []rating.Tag{rating.TagGoal, rating.TagAssist}, Comment: "ran the game"},
			{PlayerID: "p-2", GeneralRating: &nine},
		},
	}

	payload, err := encodeEvaluation(evaluation)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	row := matchTableModel{
		ID:             "m-1",
		Status:         match.StatusEvaluated,
		TeamAPlayerIDs: pq.StringArray{"p-1"},
		TeamBPlayerIDs: pq.StringArray{"p-2"},
		Evaluation:     payload,
	}
	decoded, err := matchFromRow(row)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Evaluation == nil || len(decoded.Evaluation.Records) != 2 {
		t.Fatalf("evaluation not round-tripped: %+v", decoded.Evaluation)
	}
	record, ok := decoded.Evaluation.RecordFor("p-1")
	if !ok || len(record.Tags) != 2 || record.Tags[0] != rating.TagGoal {
		t.Fatalf("unexpected record: %+v", record)
	}
	rated, _ := decoded.Evaluation.RecordFor("p-2")
	if rated.GeneralRating == nil || *rated.GeneralRating != 9 {
		t.Fatalf("general rating lost: %+v", rated)
	}

	if none, err := encodeEvaluation(nil); err != nil || none != nil {
		t.Fatalf("expected nil payload for nil evaluation, got %v %v", none, err)
	}
}
