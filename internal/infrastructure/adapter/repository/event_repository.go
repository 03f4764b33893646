package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/model"
)

// EventRepository implements EventRepository interface using GORM
type EventRepository struct {
	db              *gorm.DB
	sequences       *SequenceRepository
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewEventRepository creates a new EventRepository instance
func NewEventRepository(db *gorm.DB, logger coreport.Logger) *EventRepository {
	return &EventRepository{
		db:              db,
		sequences:       NewSequenceRepository(db, logger),
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Append numbers the event from the events sequence and inserts it in the same transaction
func (r *EventRepository) Append(ctx context.Context, event *entity.Event) error {
	seq, err := r.sequences.Next(ctx, entity.SequenceEvents)
	if err != nil {
		return fmt.Errorf("allocate event seq: %w", err)
	}

	m := model.Event{
		Seq:       seq,
		Kind:      string(event.Kind),
		SubjectID: event.SubjectID,
		Actor:     event.Actor.String(),
		Payload:   event.Payload,
		Timestamp: event.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.errorClassifier.mapError(r.logger, "appending event", err, nil)
	}

	event.Seq = seq
	return nil
}

// ListAfter returns up to limit events with seq > afterSeq in ascending order
func (r *EventRepository) ListAfter(ctx context.Context, afterSeq uint64, limit int) ([]*entity.Event, error) {
	if !storableKey(afterSeq) {
		return []*entity.Event{}, nil
	}

	var rows []model.Event
	err := r.db.WithContext(ctx).
		Where("seq > ?", afterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.mapError(r.logger, "listing events", err, nil)
	}

	events := make([]*entity.Event, 0, len(rows))
	for _, m := range rows {
		events = append(events, &entity.Event{
			Seq:       m.Seq,
			Kind:      entity.EventKind(m.Kind),
			SubjectID: m.SubjectID,
			Actor:     entity.Address(m.Actor),
			Payload:   m.Payload,
			Timestamp: m.Timestamp.UTC(),
		})
	}
	return events, nil
}

// Count returns the number of stored events
func (r *EventRepository) Count(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&count).Error; err != nil {
		return 0, r.errorClassifier.mapError(r.logger, "counting events", err, nil)
	}
	return uint64(count), nil
}
