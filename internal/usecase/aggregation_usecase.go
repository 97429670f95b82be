package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/aggtype"
	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/metrics"
	"github.com/geogrid-service/internal/usecase/dto"
)

// Значения параметров новой визуализации
const (
	defaultIsFilteredByCollar = true
	defaultUseGeocentroid     = true
	defaultAutoPrecision      = true
	defaultPrecision          = 2
)

// VisualizationSource отдаёт сохранённые визуализации
type VisualizationSource interface {
	GetVisualization(ctx context.Context, id uuid.UUID) (*domain.Visualization, error)
}

// AggregationUseCase собирает geohash-агрегации поверх состояния сессии в Redis
type AggregationUseCase struct {
	agg            *aggtype.GeoHashAgg
	sessionRepo    repository.SessionRepository
	streamRepo     repository.StreamRepository
	visualizations VisualizationSource
	sessionTTL     time.Duration
	logger         *zap.Logger
}

// NewAggregationUseCase создает новый экземпляр AggregationUseCase
func NewAggregationUseCase(
	agg *aggtype.GeoHashAgg,
	sessionRepo repository.SessionRepository,
	streamRepo repository.StreamRepository,
	visualizations VisualizationSource,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AggregationUseCase {
	return &AggregationUseCase{
		agg:            agg,
		sessionRepo:    sessionRepo,
		streamRepo:     streamRepo,
		visualizations: visualizations,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

// aggSettings - итоговые настройки агрегации после применения визуализации и запроса
type aggSettings struct {
	field           string
	params          aggtype.AggParams
	visualizationID *uuid.UUID
}

// Build обновляет viewport и зум сессии и собирает агрегации.
// В сессию пишутся только изменившиеся слоты.
func (uc *AggregationUseCase) Build(ctx context.Context, req dto.BuildAggregationRequest) (*dto.BuildAggregationResponse, error) {
	sessionID, err := parseOrNewSessionID(req.SessionID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.resolveSettings(ctx, req)
	if err != nil {
		return nil, err
	}

	values, err := uc.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to load session", zap.String("session_id", sessionID.String()), zap.Error(err))
		return nil, errors.ErrSessionError
	}
	session := aggtype.NewMemorySessionFrom(values)
	previous, hadPrevious := aggtype.LoadCollar(session)

	if req.Viewport != nil {
		viewport := req.Viewport.ToDomain()
		if !viewport.Valid() {
			return nil, errors.ErrInvalidViewport
		}
		setIfChanged(session, aggtype.SessionKeyMapBounds, viewport)
	}
	if req.Zoom != nil {
		setIfChanged(session, aggtype.SessionKeyMapZoom, *req.Zoom)
	}

	vis := &aggtype.Vis{Session: session, UIState: session}
	result, err := uc.agg.RequestAggs(&aggtype.AggConfig{
		Field:  settings.field,
		Params: settings.params,
		Vis:    vis,
	})
	if err != nil {
		return nil, errors.ErrInvalidField
	}

	if changed := session.ChangedValues(); len(changed) > 0 {
		if err := uc.sessionRepo.Save(ctx, sessionID, changed, uc.sessionTTL); err != nil {
			uc.logger.Error("Failed to save session", zap.String("session_id", sessionID.String()), zap.Error(err))
			return nil, errors.ErrSessionError
		}
	} else if len(values) > 0 {
		// Активная сессия без изменений не должна истечь
		if err := uc.sessionRepo.Touch(ctx, sessionID, uc.sessionTTL); err != nil {
			uc.logger.Warn("Failed to extend session TTL", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
	}

	if result.Collar != nil {
		metrics.ObserveCollar(result.CollarRecomputed)
		if result.CollarRecomputed {
			uc.publishCollarUpdated(ctx, sessionID, settings, result, collarReason(previous, hadPrevious, result.Collar.Zoom))
		}
	}
	metrics.ClausesPerBuild.Observe(float64(len(result.Clauses)))
	metrics.PrecisionSelected.Observe(float64(result.Precision))

	resp := &dto.BuildAggregationResponse{
		SessionID:        sessionID.String(),
		Field:            settings.field,
		Precision:        result.Precision,
		Viewport:         result.Viewport,
		Collar:           result.Collar,
		CollarRecomputed: result.CollarRecomputed,
		Aggregations:     result.Clauses,
		SearchBody:       aggtype.SearchBody(result.Clauses),
	}
	if zoom, ok := vis.Zoom(); ok {
		resp.Zoom = &zoom
	}
	if settings.visualizationID != nil {
		resp.VisualizationID = settings.visualizationID.String()
	}

	uc.logger.Debug("Geohash aggregations built",
		zap.String("session_id", resp.SessionID),
		zap.String("field", resp.Field),
		zap.Int("precision", resp.Precision),
		zap.Int("clauses", len(resp.Aggregations)),
		zap.Bool("collar_recomputed", resp.CollarRecomputed),
	)

	return resp, nil
}

// GetSession возвращает сохранённое состояние сессии
func (uc *AggregationUseCase) GetSession(ctx context.Context, rawID string) (*dto.SessionResponse, error) {
	sessionID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.ErrInvalidSessionID
	}

	values, err := uc.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to load session", zap.String("session_id", rawID), zap.Error(err))
		return nil, errors.ErrSessionError
	}
	if len(values) == 0 {
		return nil, errors.ErrSessionNotFound
	}

	session := aggtype.NewMemorySessionFrom(values)
	vis := &aggtype.Vis{Session: session, UIState: session}

	resp := &dto.SessionResponse{SessionID: sessionID.String()}
	if bounds, ok := vis.Viewport(); ok {
		resp.MapBounds = &bounds
	}
	if zoom, ok := vis.Zoom(); ok {
		resp.MapZoom = &zoom
	}
	if collar, ok := aggtype.LoadCollar(session); ok {
		resp.MapCollar = &collar
	}

	return resp, nil
}

// ResetSession удаляет состояние сессии; следующий Build пересчитает collar
func (uc *AggregationUseCase) ResetSession(ctx context.Context, rawID string) error {
	sessionID, err := uuid.Parse(rawID)
	if err != nil {
		return errors.ErrInvalidSessionID
	}

	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		uc.logger.Error("Failed to delete session", zap.String("session_id", rawID), zap.Error(err))
		return errors.ErrSessionError
	}

	uc.logger.Info("Session reset", zap.String("session_id", rawID))
	return nil
}

// PrecisionTable возвращает точность для всех зумов
func (uc *AggregationUseCase) PrecisionTable() *dto.PrecisionTableResponse {
	mapper := uc.agg.Mapper()
	table := mapper.Table()

	levels := make([]dto.PrecisionLevel, len(table))
	for zoom, precision := range table {
		levels[zoom] = dto.PrecisionLevel{Zoom: zoom, Precision: precision}
	}

	return &dto.PrecisionTableResponse{
		MaxPrecision: mapper.MaxPrecision(),
		Levels:       levels,
	}
}

// Precision возвращает точность для одного зума
func (uc *AggregationUseCase) Precision(zoom int) dto.PrecisionLevel {
	return dto.PrecisionLevel{
		Zoom:      zoom,
		Precision: uc.agg.Mapper().Precision(zoom),
	}
}

func (uc *AggregationUseCase) resolveSettings(ctx context.Context, req dto.BuildAggregationRequest) (*aggSettings, error) {
	s := &aggSettings{
		field: req.Field,
		params: aggtype.AggParams{
			IsFilteredByCollar: defaultIsFilteredByCollar,
			UseGeocentroid:     defaultUseGeocentroid,
			AutoPrecision:      defaultAutoPrecision,
			Precision:          aggtype.FormatPrecision(defaultPrecision),
		},
	}

	if req.VisualizationID != "" {
		id, err := uuid.Parse(req.VisualizationID)
		if err != nil {
			return nil, errors.ErrInvalidVisualizationID
		}
		vis, err := uc.visualizations.GetVisualization(ctx, id)
		if err != nil {
			return nil, err
		}
		s.visualizationID = &id
		if s.field == "" {
			s.field = vis.Field
		}
		s.params = aggtype.AggParams{
			IsFilteredByCollar: vis.IsFilteredByCollar,
			UseGeocentroid:     vis.UseGeocentroid,
			AutoPrecision:      vis.AutoPrecision,
			Precision:          aggtype.FormatPrecision(vis.Precision),
		}
	}

	if req.IsFilteredByCollar != nil {
		s.params.IsFilteredByCollar = *req.IsFilteredByCollar
	}
	if req.UseGeocentroid != nil {
		s.params.UseGeocentroid = *req.UseGeocentroid
	}
	if req.AutoPrecision != nil {
		s.params.AutoPrecision = *req.AutoPrecision
	}
	if req.Precision != nil {
		if max := uc.agg.Mapper().MaxPrecision(); *req.Precision > max {
			return nil, errors.ErrInvalidPrecision.WithDetails(map[string]interface{}{
				"precision":     *req.Precision,
				"max_precision": max,
			})
		}
		s.params.Precision = aggtype.FormatPrecision(*req.Precision)
	}

	if s.field == "" {
		return nil, errors.ErrInvalidField
	}
	return s, nil
}

func (uc *AggregationUseCase) publishCollarUpdated(
	ctx context.Context,
	sessionID uuid.UUID,
	settings *aggSettings,
	result *aggtype.Result,
	reason string,
) {
	if uc.streamRepo == nil {
		return
	}

	event := &domain.CollarUpdatedEvent{
		EventID:         uuid.New(),
		SessionID:       sessionID,
		VisualizationID: settings.visualizationID,
		Field:           settings.field,
		Reason:          reason,
		Collar:          *result.Collar,
		Precision:       result.Precision,
		OccurredAt:      time.Now().UTC(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamCollarUpdated, event); err != nil {
		uc.logger.Warn("Failed to publish collar update",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
	}
}

// collarReason определяет причину пересчёта collar
func collarReason(previous domain.MapCollar, hadPrevious bool, zoom int) string {
	switch {
	case !hadPrevious:
		return domain.CollarReasonInitial
	case previous.Zoom != zoom:
		return domain.CollarReasonZoomChanged
	default:
		return domain.CollarReasonOutOfCollar
	}
}

func parseOrNewSessionID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSessionID
	}
	return id, nil
}

// setIfChanged пишет слот, только если его JSON отличается от сохранённого
func setIfChanged(session *aggtype.MemorySession, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if current, ok := session.Get(key); ok && bytes.Equal(current, data) {
		return
	}
	session.Set(key, data)
}
