package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guangfu250923/relief-backend/repository/models"
	"github.com/guangfu250923/relief-backend/validation"
)

// SupplyHeader carries the optional header fields of a new supply request.
type SupplyHeader struct {
	Name    *string
	Address *string
	Phone   *string
	Notes   *string
}

// SupplyItemSpec is one requested line in a supply-creation request.
type SupplyItemSpec struct {
	TotalNumber   int
	ReceivedCount int
	Tag           string
	Name          *string
	Unit          *string
}

// SupplyPatch is a partial update of a supply header. A nil field leaves
// the stored value unchanged.
type SupplyPatch struct {
	Name    *string
	Address *string
	Phone   *string
	Notes   *string
}

// DistributionEntry records one increment of a distribution batch.
type DistributionEntry struct {
	ItemID string
	Count  int
}

func validateItemSpecs(items []SupplyItemSpec) *RepositoryError {
	for i, spec := range items {
		if spec.TotalNumber <= 0 {
			return validationError(validation.FieldError{
				Field:   fmt.Sprintf("supplies[%d].total_number", i),
				Source:  validation.SourceInput,
				Message: "total_number must be a positive integer",
				Value:   spec.TotalNumber,
			})
		}
		if spec.ReceivedCount < 0 {
			return validationError(validation.FieldError{
				Field:   fmt.Sprintf("supplies[%d].received_count", i),
				Source:  validation.SourceInput,
				Message: "received_count must be >= 0",
				Value:   spec.ReceivedCount,
			})
		}
		if spec.ReceivedCount > spec.TotalNumber {
			return validationError(validation.FieldError{
				Field:   fmt.Sprintf("supplies[%d].received_count", i),
				Source:  validation.SourceInput,
				Message: "received_count must be less than or equal to total_number",
				Value:   spec.ReceivedCount,
			})
		}
		if spec.Tag != "" && !models.SupplyItemTag(spec.Tag).Valid() {
			return validationError(validation.FieldError{
				Field:   fmt.Sprintf("supplies[%d].tag", i),
				Source:  validation.SourceInput,
				Message: "unknown supply item tag",
				Value:   spec.Tag,
			})
		}
	}
	return nil
}

// CreateSupplyWithItems persists a supply header and all its item lines in
// one transaction. Any invalid item aborts the whole operation before a row
// is written. The generated edit PIN is stored on the returned supply; the
// caller is responsible for exposing it to the creator only.
func (r *Repository) CreateSupplyWithItems(header SupplyHeader, items []SupplyItemSpec) (*models.Supply, *RepositoryError) {
	if repoErr := validateItemSpecs(items); repoErr != nil {
		return nil, repoErr
	}
	if header.Phone != nil {
		if err := validation.CheckPhone(*header.Phone); err != nil {
			return nil, validationError(validation.FieldError{
				Field:   "phone",
				Source:  validation.SourceInput,
				Message: err.Error(),
			})
		}
	}

	pin := GeneratePin()
	supply := models.Supply{
		ID:      uuid.NewString(),
		Name:    header.Name,
		Address: header.Address,
		Phone:   header.Phone,
		Notes:   header.Notes,
		EditPin: &pin,
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	if err := dbTx.Create(&supply).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapDBError(err)
	}

	supply.Items = make([]models.SupplyItem, 0, len(items))
	for _, spec := range items {
		tag := spec.Tag
		if tag == "" {
			tag = string(models.TagOther)
		}
		item := models.SupplyItem{
			ID:            uuid.NewString(),
			SupplyID:      supply.ID,
			TotalNumber:   spec.TotalNumber,
			ReceivedCount: spec.ReceivedCount,
			Tag:           tag,
			Name:          spec.Name,
			Unit:          spec.Unit,
		}
		if err := dbTx.Create(&item).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
		supply.Items = append(supply.Items, item)
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}

	return &supply, nil
}

// GetSupply fetches one supply with all its item lines.
func (r *Repository) GetSupply(id string) (*models.Supply, *RepositoryError) {
	var supply models.Supply
	err := r.db.Preload("Items").Where("supply_id = ?", id).First(&supply).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply", id)
		}
		return nil, wrapDBError(err)
	}
	return &supply, nil
}

// Keeps supplies that still need deliveries: at least one unfulfilled item,
// or no items at all.
const unfulfilledSupplyCond = `NOT EXISTS (SELECT 1 FROM supply_items si WHERE si.supply_id = supplies.supply_id)
OR EXISTS (SELECT 1 FROM supply_items si WHERE si.supply_id = supplies.supply_id AND si.received_count < si.total_number)`

// ListSupplies returns a page of supplies with their items. When
// showFulfilled is false, supplies whose every item is fully received are
// hidden.
func (r *Repository) ListSupplies(limit, offset int, showFulfilled bool) ([]models.Supply, int64, *RepositoryError) {
	query := r.db.Model(&models.Supply{})
	if !showFulfilled {
		query = query.Where(unfulfilledSupplyCond)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}

	supplies := make([]models.Supply, 0, limit)
	err := query.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset).Find(&supplies).Error
	if err != nil {
		return nil, 0, wrapDBError(err)
	}
	return supplies, total, nil
}

// PatchSupply applies a PIN-gated partial update to a supply header.
func (r *Repository) PatchSupply(id, pin string, patch SupplyPatch) (*models.Supply, *RepositoryError) {
	if patch.Phone != nil {
		if err := validation.CheckPhone(*patch.Phone); err != nil {
			return nil, validationError(validation.FieldError{
				Field:   "phone",
				Source:  validation.SourceInput,
				Message: err.Error(),
			})
		}
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	var supply models.Supply
	err := dbTx.Where("supply_id = ?", id).First(&supply).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply", id)
		}
		return nil, wrapDBError(err)
	}

	if !supply.PinMatches(pin) {
		dbTx.Rollback()
		return nil, pinMismatchError()
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		if err := dbTx.Model(&supply).Updates(updates).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}

	if err := r.db.Preload("Items").Where("supply_id = ?", id).First(&supply).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &supply, nil
}

// DistributeSupplyItems applies a batch of received-quantity increments to
// the items of one supply. The targeted rows are locked before validation,
// so concurrent batches touching the same items serialize; the whole batch
// commits or none of it does.
//
// Duplicate item ids in the batch lock the row once but each occurrence is
// validated and applied in batch order, accumulating on the in-memory value.
func (r *Repository) DistributeSupplyItems(supplyID, pin string, batch []DistributionEntry) ([]models.SupplyItem, *RepositoryError) {
	for i, entry := range batch {
		if entry.ItemID == "" {
			return nil, validationError(validation.FieldError{
				Field:   fmt.Sprintf("[%d].id", i),
				Source:  validation.SourceInput,
				Message: "item id is required",
			})
		}
		if entry.Count <= 0 {
			return nil, validationError(validation.FieldError{
				Field:   fmt.Sprintf("[%d].count", i),
				Source:  validation.SourceInput,
				Message: "count must be a positive integer",
				Value:   entry.Count,
			})
		}
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	var supply models.Supply
	err := dbTx.Where("supply_id = ?", supplyID).First(&supply).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Supply", supplyID)
		}
		return nil, wrapDBError(err)
	}

	if !supply.PinMatches(pin) {
		dbTx.Rollback()
		return nil, pinMismatchError()
	}

	if len(batch) == 0 {
		dbTx.Rollback()
		return []models.SupplyItem{}, nil
	}

	// Deduplicate ids, preserving first-seen order for locking and response.
	ids := make([]string, 0, len(batch))
	seen := make(map[string]bool, len(batch))
	for _, entry := range batch {
		if !seen[entry.ItemID] {
			seen[entry.ItemID] = true
			ids = append(ids, entry.ItemID)
		}
	}

	var rows []models.SupplyItem
	err = forUpdate(dbTx).
		Where("supply_id = ? AND supply_item_id IN ?", supplyID, ids).
		Find(&rows).Error
	if err != nil {
		dbTx.Rollback()
		return nil, wrapDBError(err)
	}

	byID := make(map[string]*models.SupplyItem, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	if len(rows) != len(ids) {
		var fields []validation.FieldError
		for _, id := range ids {
			if byID[id] == nil {
				fields = append(fields, validation.FieldError{
					Field:   "id",
					Source:  validation.SourceInput,
					Message: fmt.Sprintf("supply item %s does not belong to supply %s", id, supplyID),
					Value:   id,
				})
			}
		}
		dbTx.Rollback()
		return nil, validationError(fields...)
	}

	for _, entry := range batch {
		item := byID[entry.ItemID]
		// Compare against the remaining headroom rather than summing, so a
		// huge count cannot wrap the addition past the limit.
		if entry.Count > item.TotalNumber-item.ReceivedCount {
			dbTx.Rollback()
			return nil, &RepositoryError{
				Code:    ErrCodeConflict,
				Message: "received_count would exceed total_number",
				Detail: fmt.Sprintf("item %s: received_count %d + %d > total_number %d",
					item.ID, item.ReceivedCount, entry.Count, item.TotalNumber),
			}
		}
		item.ReceivedCount += entry.Count
	}

	for _, id := range ids {
		item := byID[id]
		err = dbTx.Model(&models.SupplyItem{}).
			Where("supply_item_id = ?", id).
			Update("received_count", item.ReceivedCount).Error
		if err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}

	updated := make([]models.SupplyItem, 0, len(ids))
	for _, id := range ids {
		updated = append(updated, *byID[id])
	}
	return updated, nil
}
