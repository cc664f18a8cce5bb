package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guangfu250923/relief-backend/repository/models"
	"github.com/guangfu250923/relief-backend/validation"
)

// SupplyItemCreate is the input for adding one item line to an existing
// supply.
type SupplyItemCreate struct {
	SupplyID      string
	TotalNumber   int
	ReceivedCount int
	Tag           string
	Name          *string
	Unit          *string
}

// SupplyItemPatch is a partial update of an item line. A nil field leaves
// the stored value unchanged.
type SupplyItemPatch struct {
	TotalNumber   *int
	ReceivedCount *int
	Tag           *string
	Name          *string
	Unit          *string
}

// CreateSupplyItem adds one item line to an existing supply, gated by the
// parent's edit PIN.
func (r *Repository) CreateSupplyItem(pin string, in SupplyItemCreate) (*models.SupplyItem, *RepositoryError) {
	if repoErr := validateItemSpecs([]SupplyItemSpec{{
		TotalNumber:   in.TotalNumber,
		ReceivedCount: in.ReceivedCount,
		Tag:           in.Tag,
	}}); repoErr != nil {
		return nil, repoErr
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	var supply models.Supply
	err := dbTx.Where("supply_id = ?", in.SupplyID).First(&supply).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply", in.SupplyID)
		}
		return nil, wrapDBError(err)
	}

	if !supply.PinMatches(pin) {
		dbTx.Rollback()
		return nil, pinMismatchError()
	}

	tag := in.Tag
	if tag == "" {
		tag = string(models.TagOther)
	}
	item := models.SupplyItem{
		ID:            uuid.NewString(),
		SupplyID:      supply.ID,
		TotalNumber:   in.TotalNumber,
		ReceivedCount: in.ReceivedCount,
		Tag:           tag,
		Name:          in.Name,
		Unit:          in.Unit,
	}
	if err := dbTx.Create(&item).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapDBError(err)
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &item, nil
}

// GetSupplyItem fetches one item line.
func (r *Repository) GetSupplyItem(id string) (*models.SupplyItem, *RepositoryError) {
	var item models.SupplyItem
	err := r.db.Where("supply_item_id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply Item", id)
		}
		return nil, wrapDBError(err)
	}
	return &item, nil
}

// ListSupplyItems returns a page of item lines, optionally filtered by
// parent supply and tag.
func (r *Repository) ListSupplyItems(supplyID, tag string, limit, offset int) ([]models.SupplyItem, int64, *RepositoryError) {
	query := r.db.Model(&models.SupplyItem{})
	if supplyID != "" {
		query = query.Where("supply_id = ?", supplyID)
	}
	if tag != "" {
		query = query.Where("tag = ?", tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}

	items := make([]models.SupplyItem, 0, limit)
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}
	return items, total, nil
}

// PatchSupplyItem applies a PIN-gated partial update to an item line. Once
// received_count has caught up with total_number the pair is locked and
// further quantity updates are rejected.
func (r *Repository) PatchSupplyItem(id, pin string, patch SupplyItemPatch) (*models.SupplyItem, *RepositoryError) {
	if patch.Tag != nil && !models.SupplyItemTag(*patch.Tag).Valid() {
		return nil, validationError(validation.FieldError{
			Field:   "tag",
			Source:  validation.SourceInput,
			Message: "unknown supply item tag",
			Value:   *patch.Tag,
		})
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	var item models.SupplyItem
	err := dbTx.Preload("Supply").Where("supply_item_id = ?", id).First(&item).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply Item", id)
		}
		return nil, wrapDBError(err)
	}

	if item.Supply != nil && !item.Supply.PinMatches(pin) {
		dbTx.Rollback()
		return nil, pinMismatchError()
	}

	if patch.TotalNumber != nil || patch.ReceivedCount != nil {
		if validation.PairLocked(item.TotalNumber, item.ReceivedCount) {
			dbTx.Rollback()
			return nil, &RepositoryError{
				Code:    ErrCodeConflict,
				Message: "received_count and total_number are locked because their values are equal; updates are not allowed",
			}
		}
		fieldErrs := validation.CheckQuantityPair(
			"total_number", "received_count",
			patch.TotalNumber, patch.ReceivedCount,
			&item.TotalNumber, &item.ReceivedCount,
		)
		if len(fieldErrs) > 0 {
			dbTx.Rollback()
			return nil, validationError(fieldErrs...)
		}
	}

	updates := map[string]any{}
	if patch.TotalNumber != nil {
		updates["total_number"] = *patch.TotalNumber
	}
	if patch.ReceivedCount != nil {
		updates["received_count"] = *patch.ReceivedCount
	}
	if patch.Tag != nil {
		updates["tag"] = *patch.Tag
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Unit != nil {
		updates["unit"] = *patch.Unit
	}

	if len(updates) > 0 {
		if err := dbTx.Model(&item).Updates(updates).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}

	item.Supply = nil
	return &item, nil
}
