package entity

import "time"

// Material represents material table: one steel coil as consumed by the scheduler.
// Empty strings stand for absent optional text fields (roughness, batch code, remarks).
type Material struct {
	ID             uint       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CoilID         string     `gorm:"column:coil_id;type:varchar(32);uniqueIndex;not null" json:"coil_id"`
	ContractNo     string     `gorm:"column:contract_no;type:varchar(32)" json:"contract_no"`
	CustomerName   string     `gorm:"column:customer_name;type:varchar(64)" json:"customer_name"`
	CustomerCode   string     `gorm:"column:customer_code;type:varchar(16)" json:"customer_code"`
	SteelGrade     string     `gorm:"column:steel_grade;type:varchar(32);not null" json:"steel_grade"`
	Thickness      float64    `gorm:"column:thickness;type:decimal(6,2);not null" json:"thickness"`
	Width          int        `gorm:"column:width;not null" json:"width"`
	Weight         float64    `gorm:"column:weight;type:decimal(6,2);not null" json:"weight"`
	HardnessLevel  string     `gorm:"column:hardness_level;type:varchar(8)" json:"hardness_level"`
	SurfaceLevel   string     `gorm:"column:surface_level;type:varchar(8)" json:"surface_level"`
	RoughnessReq   string     `gorm:"column:roughness_req;type:varchar(16)" json:"roughness_req,omitempty"`
	ElongationReq  *float64   `gorm:"column:elongation_req;type:decimal(5,1)" json:"elongation_req,omitempty"`
	ProductType    string     `gorm:"column:product_type;type:varchar(32)" json:"product_type"`
	ContractAttr   string     `gorm:"column:contract_attr;type:varchar(32)" json:"contract_attr"`
	ContractNature string     `gorm:"column:contract_nature;type:varchar(32)" json:"contract_nature"`
	ExportFlag     bool       `gorm:"column:export_flag;not null;default:false" json:"export_flag"`
	WeeklyDelivery bool       `gorm:"column:weekly_delivery;not null;default:false" json:"weekly_delivery"`
	BatchCode      string     `gorm:"column:batch_code;type:varchar(16);index" json:"batch_code,omitempty"`
	CoilingTime    time.Time  `gorm:"column:coiling_time;not null" json:"coiling_time"`
	StorageDays    int        `gorm:"column:storage_days;not null;default:0" json:"storage_days"`
	StorageLoc     string     `gorm:"column:storage_loc;type:varchar(16)" json:"storage_loc"`
	DueDate        *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Remarks        string     `gorm:"column:remarks;type:varchar(64)" json:"remarks,omitempty"`
	ImportBatchID  *uint      `gorm:"column:import_batch_id;index" json:"-"`

	// Scenario names the catalog group a record was synthesized from ("" for random fill).
	// In-memory only; never persisted or serialized.
	Scenario string `gorm:"-" json:"-"`
}

func (Material) TableName() string {
	return "material"
}
