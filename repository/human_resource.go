package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guangfu250923/relief-backend/repository/models"
	"github.com/guangfu250923/relief-backend/validation"
)

// HumanResourceCreate is the input for a new personnel request.
type HumanResourceCreate struct {
	Org           string
	Address       string
	Phone         *string
	RoleName      string
	RoleType      string
	HeadcountNeed int
	HeadcountGot  int
	Notes         *string
}

// HumanResourcePatch is a partial update of a personnel request. A nil
// field leaves the stored value unchanged.
type HumanResourcePatch struct {
	Org           *string
	Address       *string
	Phone         *string
	Status        *string
	RoleName      *string
	RoleType      *string
	RoleStatus    *string
	HeadcountNeed *int
	HeadcountGot  *int
	Notes         *string
}

// HumanResourceFilter narrows listing results.
type HumanResourceFilter struct {
	Status     string
	RoleStatus string
	RoleType   string
}

// CreateHumanResource persists a new personnel request with a generated
// edit PIN.
func (r *Repository) CreateHumanResource(in HumanResourceCreate) (*models.HumanResource, *RepositoryError) {
	if in.Org == "" || in.Address == "" || in.RoleName == "" {
		return nil, validationError(validation.FieldError{
			Field:   "org",
			Source:  validation.SourceInput,
			Message: "org, address and role_name are required",
		})
	}
	if !models.HumanResourceRoleType(in.RoleType).Valid() {
		return nil, validationError(validation.FieldError{
			Field:   "role_type",
			Source:  validation.SourceInput,
			Message: "unknown role type",
			Value:   in.RoleType,
		})
	}
	if in.Phone != nil {
		if err := validation.CheckPhone(*in.Phone); err != nil {
			return nil, validationError(validation.FieldError{
				Field:   "phone",
				Source:  validation.SourceInput,
				Message: err.Error(),
			})
		}
	}
	fieldErrs := validation.CheckQuantityPair(
		"headcount_need", "headcount_got",
		&in.HeadcountNeed, &in.HeadcountGot, nil, nil,
	)
	if len(fieldErrs) > 0 {
		return nil, validationError(fieldErrs...)
	}

	pin := GeneratePin()
	resource := models.HumanResource{
		ID:            uuid.NewString(),
		Org:           in.Org,
		Address:       in.Address,
		Phone:         in.Phone,
		Status:        string(models.HRStatusActive),
		RoleName:      in.RoleName,
		RoleType:      in.RoleType,
		RoleStatus:    string(models.RoleStatusPending),
		HeadcountNeed: in.HeadcountNeed,
		HeadcountGot:  in.HeadcountGot,
		Notes:         in.Notes,
		EditPin:       &pin,
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}
	if err := dbTx.Create(&resource).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapDBError(err)
	}
	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &resource, nil
}

// GetHumanResource fetches one personnel request.
func (r *Repository) GetHumanResource(id string) (*models.HumanResource, *RepositoryError) {
	var resource models.HumanResource
	err := r.db.Where("human_resource_id = ?", id).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Human Resource", id)
		}
		return nil, wrapDBError(err)
	}
	return &resource, nil
}

// ListHumanResources returns a page of personnel requests matching the
// filter.
func (r *Repository) ListHumanResources(filter HumanResourceFilter, limit, offset int) ([]models.HumanResource, int64, *RepositoryError) {
	query := r.db.Model(&models.HumanResource{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RoleStatus != "" {
		query = query.Where("role_status = ?", filter.RoleStatus)
	}
	if filter.RoleType != "" {
		query = query.Where("role_type = ?", filter.RoleType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}

	resources := make([]models.HumanResource, 0, limit)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&resources).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}
	return resources, total, nil
}

// PatchHumanResource applies a PIN-gated partial update. The headcount pair
// follows the same rules as supply item quantities: negative inputs and
// got > need are rejected, and a pair whose stored values are equal is
// locked against further updates.
func (r *Repository) PatchHumanResource(id, pin string, patch HumanResourcePatch) (*models.HumanResource, *RepositoryError) {
	if patch.Status != nil && !models.HumanResourceStatus(*patch.Status).Valid() {
		return nil, validationError(validation.FieldError{
			Field:   "status",
			Source:  validation.SourceInput,
			Message: "unknown status",
			Value:   *patch.Status,
		})
	}
	if patch.RoleStatus != nil && !models.HumanResourceRoleStatus(*patch.RoleStatus).Valid() {
		return nil, validationError(validation.FieldError{
			Field:   "role_status",
			Source:  validation.SourceInput,
			Message: "unknown role status",
			Value:   *patch.RoleStatus,
		})
	}
	if patch.RoleType != nil && !models.HumanResourceRoleType(*patch.RoleType).Valid() {
		return nil, validationError(validation.FieldError{
			Field:   "role_type",
			Source:  validation.SourceInput,
			Message: "unknown role type",
			Value:   *patch.RoleType,
		})
	}
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

	var resource models.HumanResource
	err := dbTx.Where("human_resource_id = ?", id).First(&resource).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Human Resource", id)
		}
		return nil, wrapDBError(err)
	}

	if !resource.PinMatches(pin) {
		dbTx.Rollback()
		return nil, pinMismatchError()
	}

	if patch.HeadcountNeed != nil || patch.HeadcountGot != nil {
		if validation.PairLocked(resource.HeadcountNeed, resource.HeadcountGot) {
			dbTx.Rollback()
			return nil, &RepositoryError{
				Code:    ErrCodeConflict,
				Message: "headcount_got and headcount_need are locked because their values are equal; updates are not allowed",
			}
		}
		fieldErrs := validation.CheckQuantityPair(
			"headcount_need", "headcount_got",
			patch.HeadcountNeed, patch.HeadcountGot,
			&resource.HeadcountNeed, &resource.HeadcountGot,
		)
		if len(fieldErrs) > 0 {
			dbTx.Rollback()
			return nil, validationError(fieldErrs...)
		}
	}

	updates := map[string]any{}
	if patch.Org != nil {
		updates["org"] = *patch.Org
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
		updates["is_completed"] = *patch.Status == string(models.HRStatusCompleted)
	}
	if patch.RoleName != nil {
		updates["role_name"] = *patch.RoleName
	}
	if patch.RoleType != nil {
		updates["role_type"] = *patch.RoleType
	}
	if patch.RoleStatus != nil {
		updates["role_status"] = *patch.RoleStatus
	}
	if patch.HeadcountNeed != nil {
		updates["headcount_need"] = *patch.HeadcountNeed
	}
	if patch.HeadcountGot != nil {
		updates["headcount_got"] = *patch.HeadcountGot
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		if err := dbTx.Model(&resource).Updates(updates).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &resource, nil
}
