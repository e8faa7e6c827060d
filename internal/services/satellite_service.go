package services

import (
	"context"
	"fmt"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

type CaronaStore interface {
	ListByTrip(ctx context.Context, tripID int64) ([]models.Carona, error)
	GetByID(ctx context.Context, id int64) (models.Carona, error)
	Create(ctx context.Context, c models.Carona) (models.Carona, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) (models.Carona, error)
}

// CaronaService handles ride-share requests. A carona's status does not
// follow the parent trip's status.
type CaronaService struct {
	Caronas   CaronaStore
	RequestID string
}

func (s CaronaService) List(ctx context.Context, tripID int64) ([]models.Carona, error) {
	return s.Caronas.ListByTrip(ctx, tripID)
}

func (s CaronaService) Create(ctx context.Context, caller domain.RequestContext, tripID int64, req models.CreateCaronaRequest) (models.Carona, error) {
	if err := models.Validate(req); err != nil {
		return models.Carona{}, err
	}
	c, err := s.Caronas.Create(ctx, models.Carona{
		TripID:        tripID,
		RequesterID:   caller.UserID,
		PassengerName: utils.NormalizeSpace(req.PassengerName),
		Seats:         req.Seats,
		Reason:        req.Reason,
		Status:        models.RequestPending,
	})
	if err != nil {
		return c, err
	}
	utils.LogEvent(s.RequestID, "caronas", "create", fmt.Sprintf("carona_id=%d trip_id=%d", c.ID, tripID))
	return c, nil
}

func (s CaronaService) ChangeStatus(ctx context.Context, id int64, status string) (models.Carona, error) {
	st, err := models.ParseRequestStatus(status)
	if err != nil {
		return models.Carona{}, err
	}
	c, err := s.Caronas.UpdateStatus(ctx, id, st)
	if err != nil {
		return c, err
	}
	utils.LogEvent(s.RequestID, "caronas", "change_status", fmt.Sprintf("carona_id=%d status=%s", id, st))
	return c, nil
}

type EvaluationStore interface {
	ListByTrip(ctx context.Context, tripID int64) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id int64) (models.Evaluation, error)
	Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error)
	UpdateStatus(ctx context.Context, id int64, status models.EvaluationStatus) (models.Evaluation, error)
}

type EvaluationService struct {
	Evaluations EvaluationStore
	RequestID   string
}

func (s EvaluationService) List(ctx context.Context, tripID int64) ([]models.Evaluation, error) {
	return s.Evaluations.ListByTrip(ctx, tripID)
}

func (s EvaluationService) Create(ctx context.Context, caller domain.RequestContext, tripID int64, req models.CreateEvaluationRequest) (models.Evaluation, error) {
	if err := models.Validate(req); err != nil {
		return models.Evaluation{}, err
	}
	e, err := s.Evaluations.Create(ctx, models.Evaluation{
		TripID:      tripID,
		EvaluatorID: caller.UserID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Status:      models.EvaluationPending,
	})
	if err != nil {
		return e, err
	}
	utils.LogEvent(s.RequestID, "evaluations", "create", fmt.Sprintf("evaluation_id=%d trip_id=%d rating=%d", e.ID, tripID, e.Rating))
	return e, nil
}

func (s EvaluationService) ChangeStatus(ctx context.Context, id int64, status string) (models.Evaluation, error) {
	st, err := models.ParseEvaluationStatus(status)
	if err != nil {
		return models.Evaluation{}, err
	}
	e, err := s.Evaluations.UpdateStatus(ctx, id, st)
	if err != nil {
		return e, err
	}
	utils.LogEvent(s.RequestID, "evaluations", "change_status", fmt.Sprintf("evaluation_id=%d status=%s", id, st))
	return e, nil
}
