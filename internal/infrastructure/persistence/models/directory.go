package models

// PatientModel is the GORM model for patient records. The ledger only
// reads it through the directory ACL; registration lives elsewhere.
type PatientModel struct {
	AuditedAggregateModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Phone    string `gorm:"type:varchar(30)"`
	Email    string `gorm:"type:varchar(200)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for PatientModel
func (PatientModel) TableName() string {
	return "patients"
}

// StaffModel is the GORM model for clinic staff records
type StaffModel struct {
	AuditedAggregateModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Role     string `gorm:"type:varchar(30);not null;index"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for StaffModel
func (StaffModel) TableName() string {
	return "staff"
}
