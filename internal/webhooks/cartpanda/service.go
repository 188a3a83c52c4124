package cartpandawebhook

import (
	"context"
	"fmt"

	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	"github.com/xmxsystem/webhook-backend/pkg/enums"
	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
	"github.com/xmxsystem/webhook-backend/pkg/logger"
)

// SaleService is the slice of the sales domain this processor needs.
type SaleService interface {
	Ingest(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	Transition(ctx context.Context, externalID string, status enums.SaleStatus) (*models.Sale, error)
}

type ServiceParams struct {
	Sales  SaleService
	Logger *logger.Logger
}

type handlerFunc func(ctx context.Context, event *Event) (*models.Sale, error)

type Service struct {
	sales    SaleService
	logg     *logger.Logger
	handlers map[enums.EventType]handlerFunc
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Sales == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sales service required")
	}
	s := &Service{
		sales: params.Sales,
		logg:  params.Logger,
	}
	// registration table: new event types get a row here, dispatch
	// stays untouched
	s.handlers = map[enums.EventType]handlerFunc{
		enums.EventTypeSaleApproved:  s.handleSaleApproved,
		enums.EventTypeSaleRefunded:  s.handleSaleRefunded,
		enums.EventTypeSaleCancelled: s.handleSaleCancelled,
	}
	return s, nil
}

// HandleEvent routes a verified, decoded event to its handler. Unknown
// types are a client error and never touch the store.
func (s *Service) HandleEvent(ctx context.Context, event *Event) (*models.Sale, error) {
	if event == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event required")
	}

	eventType, err := enums.ParseEventType(event.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown webhook type: %s", event.Type))
	}
	handler, ok := s.handlers[eventType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown webhook type: %s", event.Type))
	}

	return handler(ctx, event)
}

func (s *Service) handleSaleApproved(ctx context.Context, event *Event) (*models.Sale, error) {
	sale, err := buildSale(event)
	if err != nil {
		return nil, err
	}
	return s.sales.Ingest(ctx, sale)
}

func (s *Service) handleSaleRefunded(ctx context.Context, event *Event) (*models.Sale, error) {
	return s.sales.Transition(ctx, event.Data.SaleID, enums.SaleStatusRefunded)
}

func (s *Service) handleSaleCancelled(ctx context.Context, event *Event) (*models.Sale, error) {
	return s.sales.Transition(ctx, event.Data.SaleID, enums.SaleStatusCancelled)
}
