// Package departure runs the zarpe workflow: validate, persist the
// departure record, then reorganize the queue as a separate step whose
// failure never undoes the record.
package departure

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/helper"
	"backend-turnero/internal/models"
	"backend-turnero/internal/queue"
	"backend-turnero/internal/store"
)

const RoutingKeyCreated = "zarpe.created"

type Outcome string

const (
	FullSuccess       Outcome = "FULL_SUCCESS"
	Partial           Outcome = "PARTIAL"
	TransactionFailed Outcome = "TRANSACTION_FAILED"
)

type Request struct {
	VesselID       string  `json:"embarcacion_id" validate:"required"`
	PassengerCount int     `json:"cantidad_pasajeros" validate:"min=1,max=50"`
	TotalPrice     float64 `json:"valor_total" validate:"min=1000,max=10000000"`
	Operator       string  `json:"-"`
}

// Result - Departure is fully built on every outcome, including
// TransactionFailed, so the caller can still export it.
type Result struct {
	Outcome   Outcome
	Departure models.Departure
	Promoted  *models.Vessel
	Err       error
}

// Queue is the part of the board the workflow needs.
type Queue interface {
	Vessel(id string) (models.Vessel, bool)
	ReorganizeAfterDeparture(ctx context.Context, id string, prior models.VesselStatus) queue.Result
	Record(ctx context.Context, kind models.HistoryKind, details map[string]any)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Event - Body of the zarpe.created message.
type Event struct {
	Event       string           `json:"event"`
	ServiceDate string           `json:"fecha"`
	Departure   models.Departure `json:"zarpe"`
}

type Service struct {
	queue     Queue
	records   store.DepartureStore
	publisher Publisher
	clock     *helper.DockClock
	validate  *validator.Validate
}

// NewService - publisher may be nil when no broker is configured.
func NewService(q Queue, records store.DepartureStore, publisher Publisher, clock *helper.DockClock) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		queue:     q,
		records:   records,
		publisher: publisher,
		clock:     clock,
		validate:  v,
	}
}

var fieldMessages = map[string]string{
	"embarcacion_id":     "Debe seleccionar una embarcación",
	"cantidad_pasajeros": "La cantidad de pasajeros debe estar entre 1 y 50",
	"valor_total":        "El valor total debe estar entre $1.000 y $10.000.000",
}

// Validate - First violated constraint as a ValidationError.
func (s *Service) Validate(req Request) error {
	if math.IsNaN(req.TotalPrice) || math.IsInf(req.TotalPrice, 0) {
		return apperror.NewValidation("valor_total", "number", fieldMessages["valor_total"])
	}

	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		return apperror.NewValidation(fe.Field(), fe.Tag(), msg)
	}
	return apperror.NewValidation("", "invalid", err.Error())
}

// Process - Validation and vessel checks return an error before anything is
// written. Once the record step starts the outcome is reported in Result.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	v, ok := s.queue.Vessel(req.VesselID)
	if !ok {
		return nil, fmt.Errorf("embarcación %s: %w", req.VesselID, apperror.ErrNotFound)
	}
	if v.Status != models.StatusBoarding && v.Status != models.StatusReserved {
		return nil, apperror.NewValidation("embarcacion_id", "status",
			fmt.Sprintf("%s no está %s ni en %s", v.DisplayName, models.StatusBoarding, models.StatusReserved))
	}

	operator := req.Operator
	if operator == "" {
		operator = queue.ActorFrom(ctx)
	}

	d := models.Departure{
		ID:                uuid.NewString(),
		VesselID:          v.ID,
		VesselName:        v.DisplayName,
		Category:          v.Category,
		DischargePosition: v.Position,
		PassengerCount:    req.PassengerCount,
		TotalPrice:        req.TotalPrice,
		PricePerPerson:    math.Round(req.TotalPrice / float64(req.PassengerCount)),
		Operator:          operator,
		CreatedAt:         s.clock.Now(),
	}
	serviceDate := s.clock.DateOf(d.CreatedAt)

	// STEP 1: record
	if err := s.records.AddDeparture(ctx, d, serviceDate); err != nil {
		log.Printf("[zarpe] %s not recorded: %v", d.VesselName, err)
		return &Result{
			Outcome:   TransactionFailed,
			Departure: d,
			Err:       apperror.WriteFailed("zarpe", err),
		}, nil
	}

	s.announce(ctx, d, serviceDate)
	s.queue.Record(ctx, models.HistoryDeparture, map[string]any{
		"zarpe_id":    d.ID,
		"embarcacion": d.VesselName,
		"pasajeros":   d.PassengerCount,
		"valor_total": d.TotalPrice,
		"estado":      string(v.Status),
	})

	// STEP 2: reorganize, only after the record exists
	res := s.queue.ReorganizeAfterDeparture(ctx, v.ID, v.Status)
	if res.Kind != queue.Applied {
		log.Printf("[zarpe] %s recorded but queue not reorganized: %v", d.VesselName, res.Err)
		return &Result{
			Outcome:   Partial,
			Departure: d,
			Err:       &apperror.PartialWorkflowError{DepartureID: d.ID, Err: res.Err},
		}, nil
	}

	log.Printf("[zarpe] %s departed with %d pax", d.VesselName, d.PassengerCount)
	return &Result{Outcome: FullSuccess, Departure: d, Promoted: res.Vessel}, nil
}

func (s *Service) announce(ctx context.Context, d models.Departure, serviceDate string) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := s.publisher.Publish(ctx, RoutingKeyCreated, Event{
		Event:       RoutingKeyCreated,
		ServiceDate: serviceDate,
		Departure:   d,
	})
	if err != nil {
		log.Printf("[zarpe] event for %s not published: %v", d.ID, err)
	}
}

// List - Departures of the given dock date (YYYY-MM-DD), today when empty.
func (s *Service) List(ctx context.Context, day string) ([]models.Departure, error) {
	if day == "" {
		day = s.clock.Today()
	}
	if _, err := time.Parse(helper.DateLayout, day); err != nil {
		return nil, apperror.NewValidation("fecha", "date", "fecha debe tener formato AAAA-MM-DD")
	}
	return s.records.ListDepartures(ctx, day)
}
