package consultation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/prediction"
)

// SavedMessage is shown after a successful save.
const SavedMessage = "Les données de consultation ont été enregistrées avec succès."

type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Service stamps entries and hands them to every configured recorder. The
// first recorder is the primary log; a failure there fails the save.
// Failures of the others are logged only.
type Service struct {
	primary Recorder
	mirrors []Recorder
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(logger *zap.Logger, primary Recorder, mirrors ...Recorder) *Service {
	return &Service{
		primary: primary,
		mirrors: mirrors,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Save(ctx context.Context, p clinical.Patient, v clinical.FeatureVector, r prediction.Result) (Entry, error) {
	e := Entry{Patient: p, Vector: v, Result: r, RecordAt: s.now()}

	if err := s.primary.Record(ctx, e); err != nil {
		s.logger.Error("consultation not saved", zap.Error(err))
		return e, err
	}
	for _, m := range s.mirrors {
		if err := m.Record(ctx, e); err != nil {
			s.logger.Warn("consultation mirror failed", zap.Error(err))
		}
	}

	s.logger.Info("consultation saved",
		zap.String("result", r.String()),
		zap.String("recorded_at", e.RecordAt.Format(TimeLayout)),
	)
	return e, nil
}
