package services

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/models"
	"profitflow/internal/pagination"
	"profitflow/internal/roi"
)

// performanceService stores the weekly stream returns reported by admins.
type performanceService struct {
	db   *gorm.DB
	calc *roi.Calculator
}

// NewPerformanceService creates a new PerformanceServicer.
func NewPerformanceService(db *gorm.DB, calc *roi.Calculator) PerformanceServicer {
	return &performanceService{db: db, calc: calc}
}

// Upsert stores the week's stream returns. A week whose profits were already
// distributed is frozen.
func (s *performanceService) Upsert(weekEnding time.Time, streams roi.StreamROIs, notes string) (*models.PerformanceRecord, error) {
	if len(streams) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one stream is required")
	}
	week, day := WeekKey(weekEnding)

	raw, err := json.Marshal(streams)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var record models.PerformanceRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var settled int64
		if err := tx.Model(&models.ProfitLog{}).Where("week = ?", week).Count(&settled).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if settled > 0 {
			return apperrors.WithMessage(apperrors.ErrAlreadyDistributed, "performance for a distributed week cannot change")
		}

		res := tx.Where("week = ?", week).Limit(1).Find(&record)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		record.Week = week
		record.WeekEnding = day
		record.Streams = raw
		record.Notes = notes

		save := tx.Save
		if res.RowsAffected == 0 {
			save = tx.Create
		}
		if err := save(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByWeek retrieves the record of the week containing weekEnding.
func (s *performanceService) GetByWeek(weekEnding time.Time) (*models.PerformanceRecord, error) {
	week, _ := WeekKey(weekEnding)
	return s.find(week)
}

func (s *performanceService) find(week string) (*models.PerformanceRecord, error) {
	var record models.PerformanceRecord
	if err := s.db.Where("week = ?", week).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPerformanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

// List returns records, latest week first.
func (s *performanceService) List(page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceRecord], error) {
	resp, err := pagination.Fetch[models.PerformanceRecord](s.db.Model(&models.PerformanceRecord{}), page, "week DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resp, nil
}

// StreamsForWeek decodes the stored stream returns of week.
func (s *performanceService) StreamsForWeek(week string) (roi.StreamROIs, error) {
	record, err := s.find(week)
	if err != nil {
		return nil, err
	}
	return decodeStreams(record)
}

func decodeStreams(record *models.PerformanceRecord) (roi.StreamROIs, error) {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(record.Streams, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	streams, err := roi.ParseStreams(raw)
	if err != nil {
		return nil, err
	}
	if streams == nil {
		streams = roi.StreamROIs{}
	}
	return streams, nil
}

// WeeklyProof publishes the weighted ROI of every allocated plan for a
// recorded week, so users can check a payout against the reported streams.
func (s *performanceService) WeeklyProof(weekEnding time.Time) (*WeeklyProof, error) {
	week, _ := WeekKey(weekEnding)
	record, err := s.find(week)
	if err != nil {
		return nil, err
	}
	streams, err := decodeStreams(record)
	if err != nil {
		return nil, err
	}

	planIDs := s.calc.Plans()
	sort.Strings(planIDs)

	proof := &WeeklyProof{Week: week, Streams: streams, Plans: make([]PlanReturn, 0, len(planIDs))}
	for _, id := range planIDs {
		pct, err := s.calc.WeightedROI(id, streams, decimal.Zero)
		if err != nil {
			return nil, err
		}
		proof.Plans = append(proof.Plans, PlanReturn{PlanID: id, ROIPct: pct})
	}
	return proof, nil
}
