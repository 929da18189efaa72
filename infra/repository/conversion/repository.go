// Package conversion implements the ledger's conversion repository on GORM.
package conversion

import (
	"context"

	domain "github.com/TheCodister/swapdesk/pkg/conversion"
	repo "github.com/TheCodister/swapdesk/pkg/repository/conversion"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a conversion repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements conversion.Repository.
func (r *repository) Create(ctx context.Context, record domain.Record) error {
	model, err := mapRecordToModel(record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// List implements conversion.Repository. Records come back in insertion order.
func (r *repository) List(ctx context.Context) ([]domain.Record, error) {
	var models []Conversion
	if err := r.db.WithContext(
		ctx,
	).Order(
		"created_at ASC",
	).Find(
		&models,
	).Error; err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(models))
	for i := range models {
		records = append(records, mapModelToRecord(&models[i]))
	}
	return records, nil
}

// Update implements conversion.Repository. The whole record is replaced with
// the update's fields; the persisted date is left as assigned at creation.
func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.Request,
) (*domain.Record, error) {
	var model Conversion
	if err := r.db.WithContext(
		ctx,
	).First(
		&model,
		"id = ?",
		id,
	).Error; err != nil {
		return nil, err
	}

	model.FromCurrency = update.FromCurrency
	model.ToCurrency = update.ToCurrency
	model.FromAmount = update.FromAmount
	model.ToAmount = update.ToAmount

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return nil, err
	}

	record := mapModelToRecord(&model)
	return &record, nil
}

// Delete implements conversion.Repository. Deleting an absent id is an error;
// the caller decides how to surface it.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Conversion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func mapRecordToModel(record domain.Record) (Conversion, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		ID:           id,
		FromCurrency: record.FromCurrency,
		ToCurrency:   record.ToCurrency,
		FromAmount:   record.FromAmount,
		ToAmount:     record.ToAmount,
		Date:         record.Date,
	}, nil
}

func mapModelToRecord(model *Conversion) domain.Record {
	return domain.Record{
		ID:           model.ID.String(),
		FromCurrency: model.FromCurrency,
		ToCurrency:   model.ToCurrency,
		FromAmount:   model.FromAmount,
		ToAmount:     model.ToAmount,
		Date:         model.Date,
	}
}
