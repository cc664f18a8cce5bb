package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guangfu250923/relief-backend/repository/models"
	"github.com/guangfu250923/relief-backend/validation"
)

// ShelterCreate is the input for registering a shelter.
type ShelterCreate struct {
	Name             string
	Location         string
	Phone            string
	Link             *string
	Status           string
	Capacity         *int
	CurrentOccupancy *int
	AvailableSpaces  *int
	ContactPerson    *string
	Notes            *string
	OpeningHours     *string
}

// ShelterPatch is a partial update of a shelter. A nil field leaves the
// stored value unchanged.
type ShelterPatch struct {
	Name             *string
	Location         *string
	Phone            *string
	Link             *string
	Status           *string
	Capacity         *int
	CurrentOccupancy *int
	AvailableSpaces  *int
	ContactPerson    *string
	Notes            *string
	OpeningHours     *string
}

func validateShelterFields(phone, link *string, status *string) *RepositoryError {
	if status != nil && !models.ShelterStatus(*status).Valid() {
		return validationError(validation.FieldError{
			Field:   "status",
			Source:  validation.SourceInput,
			Message: "unknown shelter status",
			Value:   *status,
		})
	}
	if phone != nil {
		if err := validation.CheckPhone(*phone); err != nil {
			return validationError(validation.FieldError{
				Field:   "phone",
				Source:  validation.SourceInput,
				Message: err.Error(),
			})
		}
	}
	if link != nil {
		if err := validation.CheckURL(*link); err != nil {
			return validationError(validation.FieldError{
				Field:   "link",
				Source:  validation.SourceInput,
				Message: err.Error(),
			})
		}
	}
	return nil
}

// CreateShelter registers a shelter. Shelters have no edit PIN; they are
// maintained by coordination staff through the same API.
func (r *Repository) CreateShelter(in ShelterCreate) (*models.Shelter, *RepositoryError) {
	if in.Name == "" || in.Location == "" || in.Phone == "" {
		return nil, validationError(validation.FieldError{
			Field:   "name",
			Source:  validation.SourceInput,
			Message: "name, location and phone are required",
		})
	}
	if repoErr := validateShelterFields(&in.Phone, in.Link, &in.Status); repoErr != nil {
		return nil, repoErr
	}

	shelter := models.Shelter{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Location:         in.Location,
		Phone:            in.Phone,
		Link:             in.Link,
		Status:           in.Status,
		Capacity:         in.Capacity,
		CurrentOccupancy: in.CurrentOccupancy,
		AvailableSpaces:  in.AvailableSpaces,
		ContactPerson:    in.ContactPerson,
		Notes:            in.Notes,
		OpeningHours:     in.OpeningHours,
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}
	if err := dbTx.Create(&shelter).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapDBError(err)
	}
	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &shelter, nil
}

// GetShelter fetches one shelter.
func (r *Repository) GetShelter(id string) (*models.Shelter, *RepositoryError) {
	var shelter models.Shelter
	err := r.db.Where("shelter_id = ?", id).First(&shelter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Shelter", id)
		}
		return nil, wrapDBError(err)
	}
	return &shelter, nil
}

// ListShelters returns a page of shelters, optionally filtered by status.
func (r *Repository) ListShelters(status string, limit, offset int) ([]models.Shelter, int64, *RepositoryError) {
	query := r.db.Model(&models.Shelter{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}

	shelters := make([]models.Shelter, 0, limit)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&shelters).Error; err != nil {
		return nil, 0, wrapDBError(err)
	}
	return shelters, total, nil
}

// PatchShelter applies a partial update to a shelter.
func (r *Repository) PatchShelter(id string, patch ShelterPatch) (*models.Shelter, *RepositoryError) {
	if repoErr := validateShelterFields(patch.Phone, patch.Link, patch.Status); repoErr != nil {
		return nil, repoErr
	}

	dbTx := r.db.Begin()
	if dbTx.Error != nil {
		return nil, wrapDBError(dbTx.Error)
	}

	var shelter models.Shelter
	err := dbTx.Where("shelter_id = ?", id).First(&shelter).Error
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Shelter", id)
		}
		return nil, wrapDBError(err)
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Link != nil {
		updates["link"] = *patch.Link
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Capacity != nil {
		updates["capacity"] = *patch.Capacity
	}
	if patch.CurrentOccupancy != nil {
		updates["current_occupancy"] = *patch.CurrentOccupancy
	}
	if patch.AvailableSpaces != nil {
		updates["available_spaces"] = *patch.AvailableSpaces
	}
	if patch.ContactPerson != nil {
		updates["contact_person"] = *patch.ContactPerson
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.OpeningHours != nil {
		updates["opening_hours"] = *patch.OpeningHours
	}

	if len(updates) > 0 {
		if err := dbTx.Model(&shelter).Updates(updates).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapDBError(err)
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &shelter, nil
}
