package sales

import (
	"context"

	"github.com/xmxsystem/webhook-backend/pkg/db"
	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	"github.com/xmxsystem/webhook-backend/pkg/enums"
	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
	"github.com/xmxsystem/webhook-backend/pkg/logger"
)

type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

type Service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sales repo required")
	}
	return &Service{
		repo: params.Repo,
		logg: params.Logger,
	}, nil
}

// Ingest creates the sale record for a sale.approved event. Creation is
// idempotent on ExternalID: a unique-constraint violation means the
// record already exists, so the existing row is read back and returned
// as a success. Every other store failure propagates as a server error.
func (s *Service) Ingest(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if sale == nil || sale.ExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale external id required")
	}

	sale.Status = enums.SaleStatusApproved
	if sale.Currency == "" {
		sale.Currency = "BRL"
	}

	err := s.repo.Create(ctx, sale)
	if err == nil {
		if s.logg != nil {
			s.logg.Info(s.logg.WithSaleID(ctx, sale.ExternalID), "sale.ingested")
		}
		return sale, nil
	}

	if !db.IsUniqueViolation(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert sale")
	}

	existing, findErr := s.repo.FindByExternalID(ctx, sale.ExternalID)
	if findErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "read back duplicate sale")
	}
	if s.logg != nil {
		s.logg.Warn(s.logg.WithSaleID(ctx, sale.ExternalID), "sale.duplicate_delivery")
	}
	return existing, nil
}

// Transition overwrites the status of an existing sale. A missing base
// record is a caller-visible not-found, never a silent create. The
// write is last-write-wins, so re-delivering the same transition is a
// harmless no-op.
func (s *Service) Transition(ctx context.Context, externalID string, status enums.SaleStatus) (*models.Sale, error) {
	if externalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale external id required")
	}
	if status != enums.SaleStatusRefunded && status != enums.SaleStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported status transition")
	}

	sale, err := s.repo.UpdateStatus(ctx, externalID, status)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale status")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"sale_id": externalID,
			"status":  status.String(),
		})
		s.logg.Info(ctx, "sale.status_updated")
	}
	return sale, nil
}
