package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xmxsystem/webhook-backend/internal/repo"
	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	"github.com/xmxsystem/webhook-backend/pkg/enums"
)

// Repository is the three-operation store contract sale handling
// depends on: insert-one, select-one-by-key, update-one-by-key.
type Repository interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByExternalID(ctx context.Context, externalID string) (*models.Sale, error)
	UpdateStatus(ctx context.Context, externalID string, status enums.SaleStatus) (*models.Sale, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	return r.base.DB(ctx).Create(sale).Error
}

func (r *repository) FindByExternalID(ctx context.Context, externalID string) (*models.Sale, error) {
	var sale models.Sale
	err := r.base.DB(ctx).
		Where("external_id = ?", externalID).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) UpdateStatus(ctx context.Context, externalID string, status enums.SaleStatus) (*models.Sale, error) {
	sale, err := r.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	sale.Status = status
	if err := r.base.DB(ctx).Model(sale).Update("status", status).Error; err != nil {
		return nil, err
	}
	return sale, nil
}
