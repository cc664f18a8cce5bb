package models

// SupplyItemTag categorizes a requested material line. Stored as a plain
// string column; callers validate at the API boundary.
type SupplyItemTag string

const (
	TagFood            SupplyItemTag = "food"
	TagMedicalSupplies SupplyItemTag = "medical_supplies"
	TagGroceries       SupplyItemTag = "groceries"
	TagMachinery       SupplyItemTag = "machinery"
	TagEquipment       SupplyItemTag = "equipment"
	TagPlumber         SupplyItemTag = "plumber"
	TagOther           SupplyItemTag = "other"
)

func (t SupplyItemTag) Valid() bool {
	switch t {
	case TagFood, TagMedicalSupplies, TagGroceries, TagMachinery, TagEquipment, TagPlumber, TagOther:
		return true
	}
	return false
}

// HumanResourceStatus is the lifecycle state of a human-resource request.
type HumanResourceStatus string

const (
	HRStatusActive    HumanResourceStatus = "active"
	HRStatusCompleted HumanResourceStatus = "completed"
	HRStatusCancelled HumanResourceStatus = "cancelled"
)

func (s HumanResourceStatus) Valid() bool {
	switch s {
	case HRStatusActive, HRStatusCompleted, HRStatusCancelled:
		return true
	}
	return false
}

// HumanResourceRoleStatus tracks fulfillment of a requested role.
type HumanResourceRoleStatus string

const (
	RoleStatusCompleted HumanResourceRoleStatus = "completed"
	RoleStatusPending   HumanResourceRoleStatus = "pending"
	RoleStatusPartial   HumanResourceRoleStatus = "partial"
)

func (s HumanResourceRoleStatus) Valid() bool {
	switch s {
	case RoleStatusCompleted, RoleStatusPending, RoleStatusPartial:
		return true
	}
	return false
}

// HumanResourceRoleType categorizes the requested personnel.
type HumanResourceRoleType string

const (
	RoleGeneralVolunteer HumanResourceRoleType = "general_volunteer"
	RoleMedicalStaff     HumanResourceRoleType = "medical_staff"
	RoleLogistics        HumanResourceRoleType = "logistics"
	RoleCleaning         HumanResourceRoleType = "cleaning"
	RoleAdminSupport     HumanResourceRoleType = "admin_support"
	RoleDriver           HumanResourceRoleType = "driver"
	RoleSecurity         HumanResourceRoleType = "security"
	RoleProfessional     HumanResourceRoleType = "professional"
	RoleOther            HumanResourceRoleType = "other"
)

func (t HumanResourceRoleType) Valid() bool {
	switch t {
	case RoleGeneralVolunteer, RoleMedicalStaff, RoleLogistics, RoleCleaning,
		RoleAdminSupport, RoleDriver, RoleSecurity, RoleProfessional, RoleOther:
		return true
	}
	return false
}

// ShelterStatus is the operating state of a shelter.
type ShelterStatus string

const (
	ShelterOpen            ShelterStatus = "open"
	ShelterFull            ShelterStatus = "full"
	ShelterClosed          ShelterStatus = "closed"
	ShelterTemporaryClosed ShelterStatus = "temporary_closed"
)

func (s ShelterStatus) Valid() bool {
	switch s {
	case ShelterOpen, ShelterFull, ShelterClosed, ShelterTemporaryClosed:
		return true
	}
	return false
}
