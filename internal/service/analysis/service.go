package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/domain/models"
	"github.com/mamadbah2/dealyield/internal/engine"
	"github.com/mamadbah2/dealyield/internal/repository/cache"
	"github.com/mamadbah2/dealyield/internal/repository/mongodb"
	"github.com/mamadbah2/dealyield/internal/repository/sheets"
)

// ErrNotFound is returned for analyses that are missing or owned by another
// tenant.
var ErrNotFound = mongodb.ErrNotFound

// Settings tunes the service.
type Settings struct {
	CacheTTL      time.Duration
	DefaultMetric models.Metric
}

// Service runs the engine for a tenant and keeps the results.
type Service struct {
	analyzer *engine.Analyzer
	repo     mongodb.Repository
	cache    cache.Cache
	exporter sheets.Exporter
	settings Settings
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// NewService wires a new analysis service instance. A nil cache or exporter
// disables that concern.
func NewService(analyzer *engine.Analyzer, repository mongodb.Repository, resultCache cache.Cache, exporter sheets.Exporter, settings Settings, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = engine.NewAnalyzer(engine.DefaultGridWorkers)
	}
	if resultCache == nil {
		resultCache = cache.NewMemoryCache()
	}
	if exporter == nil {
		exporter = sheets.Noop{}
	}
	if settings.DefaultMetric == "" {
		settings.DefaultMetric = models.MetricCashOnCash
	}
	return &Service{
		analyzer: analyzer,
		repo:     repository,
		cache:    resultCache,
		exporter: exporter,
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

type computation struct {
	deal        models.Deal
	spec        models.SensitivitySpec
	fingerprint string
	result      models.AnalysisResult
}

// Preview analyzes a deal without storing anything.
func (s *Service) Preview(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	c, err := s.compute(ctx, req)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return c.result, nil
}

// Analyze analyzes a deal and stores the record under the caller's company.
func (s *Service) Analyze(ctx context.Context, session models.Session, req models.AnalysisRequest) (models.AnalysisRecord, error) {
	c, err := s.compute(ctx, req)
	if err != nil {
		return models.AnalysisRecord{}, err
	}

	record := models.AnalysisRecord{
		ID:          s.newID(),
		TenantID:    session.CompanyID,
		CreatedBy:   session.UserID,
		Fingerprint: c.fingerprint,
		Deal:        c.deal,
		Sensitivity: c.spec,
		Result:      c.result,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return models.AnalysisRecord{}, fmt.Errorf("save analysis: %w", err)
	}

	if err := s.exporter.ExportAnalysis(ctx, record); err != nil {
		s.logger.Warn("failed to export analysis", zap.String("id", record.ID), zap.Error(err))
	}

	s.logger.Info("analysis stored",
		zap.String("id", record.ID),
		zap.String("tenant_id", record.TenantID),
		zap.String("fingerprint", record.Fingerprint))
	return record, nil
}

// List returns the newest analyses of the caller's company.
func (s *Service) List(ctx context.Context, session models.Session, limit int) ([]models.AnalysisRecord, error) {
	records, err := s.repo.ListByTenant(ctx, session.CompanyID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return records, nil
}

// Get returns one analysis of the caller's company.
func (s *Service) Get(ctx context.Context, session models.Session, id string) (models.AnalysisRecord, error) {
	return s.repo.GetByID(ctx, session.CompanyID, id)
}

// Delete removes one analysis of the caller's company.
func (s *Service) Delete(ctx context.Context, session models.Session, id string) error {
	return s.repo.Delete(ctx, session.CompanyID, id)
}

// PurgeOlderThan removes analyses of every company older than age.
func (s *Service) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-age)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge analyses: %w", err)
	}
	return n, nil
}

func (s *Service) compute(ctx context.Context, req models.AnalysisRequest) (computation, error) {
	deal, err := engine.BuildDeal(req.Deal)
	if err != nil {
		return computation{}, err
	}

	spec := DefaultSpec(deal, s.settings.DefaultMetric)
	if req.Sensitivity != nil {
		spec = *req.Sensitivity
	}

	fingerprint, err := Fingerprint(deal, spec)
	if err != nil {
		return computation{}, err
	}
	c := computation{deal: deal, spec: spec, fingerprint: fingerprint}

	if result, ok := s.cached(ctx, fingerprint); ok {
		c.result = result
		return c, nil
	}

	result, err := s.analyzer.AnalyzeDeal(deal, spec)
	if err != nil {
		return computation{}, err
	}
	c.result = result
	s.remember(ctx, fingerprint, result)
	return c, nil
}

func (s *Service) cached(ctx context.Context, fingerprint string) (models.AnalysisResult, bool) {
	raw, ok, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		s.logger.Warn("result cache read failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		return models.AnalysisResult{}, false
	}
	if !ok {
		return models.AnalysisResult{}, false
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.logger.Warn("discarding unreadable cached result", zap.String("fingerprint", fingerprint), zap.Error(err))
		return models.AnalysisResult{}, false
	}
	s.logger.Debug("result cache hit", zap.String("fingerprint", fingerprint))
	return result, true
}

func (s *Service) remember(ctx context.Context, fingerprint string, result models.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode result for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, fingerprint, raw, s.settings.CacheTTL); err != nil {
		s.logger.Warn("result cache write failed", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}
