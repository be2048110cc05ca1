package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-bakery/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs("evt-1", "req-1", "incentive_award", "award-1", "incentive_award.committed", "bakery.incentive.award.v1", []byte(`{}`), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), kafka.OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "incentive_award",
		AggregateID:   "award-1",
		EventType:     "incentive_award.committed",
		Topic:         "bakery.incentive.award.v1",
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at", "created_at",
	}).
		AddRow("evt-2", "", "incentive_award", "award-2", "incentive_award.status_changed", "bakery.incentive.award.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, now, now).
		AddRow("evt-1", "req-1", "incentive_award", "award-1", "incentive_award.committed", "bakery.incentive.award.v1", []byte(`{}`), kafka.OutboxStatusFailed, 2, now, now.Add(-time.Minute))

	mock.ExpectQuery(`FOR UPDATE SKIP LOCKED`).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50, int64(30000)).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ClaimPending(context.Background(), 50, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-1", events[0].ID, "oldest event first")
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedParksAfterMaxAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker down", kafka.MaxOutboxAttempts, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "evt-1", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "evt-1", Topic: "t", EventType: "e", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent(
		"bakery.incentive.award.v1",
		"incentive_award.committed",
		"incentive_award",
		"award-1",
		"req-1",
		map[string]string{"award_number": "INC-202505-0001"},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.Equal(t, "req-1", event.RequestID)
	assert.JSONEq(t, `{"award_number":"INC-202505-0001"}`, string(event.Payload))

	_, err = kafka.NewOutboxEvent("", "incentive_award.committed", "incentive_award", "award-1", "", struct{}{})
	assert.Error(t, err)

	_, err = kafka.NewOutboxEvent("topic", "bad", "incentive_award", "award-1", "", func() {})
	assert.Error(t, err)
}
