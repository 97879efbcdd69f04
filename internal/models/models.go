package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Size is a garment size label
type Size string

// Garment sizes, smallest to largest
const (
	SizeXXS Size = "XXS"
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists all valid garment sizes in order
var Sizes = []Size{SizeXXS, SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Valid reports whether s is a known garment size
func (s Size) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// OrderStatus is the lifecycle state of a manufacturing order
type OrderStatus string

// Manufacturing order statuses. Soft deletion is handled separately
// through gorm.DeletedAt rather than a status value.
const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusQRDeleted OrderStatus = "QR Deleted"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusQRDeleted:
		return true
	}
	return false
}

// Transaction types for fabric stock movements
const (
	StockIn  = "IN"
	StockOut = "OUT"
)

// CuttingIDManual marks QR products entered by hand rather than
// generated from a manufacturing order.
const CuttingIDManual = "MANUAL"

// Fabric represents a fabric roll in stock
type Fabric struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	FabricID    string         `gorm:"not null;uniqueIndex" json:"fabric_id"`
	Name        string         `gorm:"not null" json:"name"`
	Color       string         `json:"color"`
	Composition string         `json:"composition"`
	Supplier    string         `json:"supplier"`
	StockMeters float64        `gorm:"not null;default:0" json:"stock_meters"`
}

// StockTransaction records a single fabric stock movement
type StockTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	FabricID      string    `gorm:"not null;index" json:"fabric_id"`
	Type          string    `gorm:"not null" json:"type"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PreviousStock float64   `gorm:"not null" json:"previous_stock"`
	NewStock      float64   `gorm:"not null" json:"new_stock"`
	PerformedBy   string    `json:"performed_by"`
	Remarks       string    `json:"remarks"`
}

// CuttingRecord represents a batch of fabric cut into garment pieces
type CuttingRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
	CuttingID      string          `gorm:"not null;uniqueIndex" json:"cutting_id"`
	FabricID       string          `gorm:"not null;index" json:"fabric_id"`
	ProductName    string          `gorm:"not null" json:"product_name"`
	FabricColor    string          `json:"fabric_color"`
	PiecesCount    int             `gorm:"not null" json:"pieces_count"`
	FabricUsed     float64         `json:"fabric_used"`
	CuttingDate    time.Time       `json:"cutting_date"`
	CuttingMaster  string          `json:"cutting_master"`
	SizeBreakdowns []SizeBreakdown `gorm:"foreignKey:CuttingRecordID" json:"size_breakdowns"`
}

// SizeBreakdown tracks remaining unassigned pieces of one size for a
// cutting record. Quantity is decremented as manufacturing orders are
// placed; zero-quantity entries stay visible in the cutting inventory.
type SizeBreakdown struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CuttingRecordID uuid.UUID `gorm:"type:uuid;not null;index:idx_breakdown_record_size,unique" json:"cutting_record_id"`
	Size            Size      `gorm:"not null;index:idx_breakdown_record_size,unique" json:"size"`
	InitialQuantity int       `gorm:"not null" json:"initial_quantity"`
	Quantity        int       `gorm:"not null" json:"quantity"`
}

// ManufacturingOrder assigns pieces of one size from a cutting record
// to a tailor for production
type ManufacturingOrder struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	ManufacturingID string         `gorm:"not null;uniqueIndex" json:"manufacturing_id"`
	CuttingID       string         `gorm:"not null;index" json:"cutting_id"`
	ProductName     string         `gorm:"not null" json:"product_name"`
	FabricColor     string         `json:"fabric_color"`
	Size            Size           `gorm:"not null" json:"size"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	TailorName      string         `json:"tailor_name"`
	Status          OrderStatus    `gorm:"not null;default:'Pending'" json:"status"`
	AssignedDate    time.Time      `json:"assigned_date"`
}

// QRProduct represents a manufactured, QR-labeled garment batch
type QRProduct struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	ManufacturingID string         `gorm:"not null;index" json:"manufacturing_id"`
	CuttingID       string         `gorm:"not null" json:"cutting_id"`
	ProductName     string         `gorm:"not null" json:"product_name"`
	Color           string         `json:"color"`
	Size            Size           `gorm:"not null" json:"size"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	TailorName      string         `json:"tailor_name"`
	GeneratedDate   time.Time      `json:"generated_date"`
}

// Employee represents a worker in the manufacturing operation
type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	EmployeeID  string         `gorm:"not null;uniqueIndex" json:"employee_id"`
	Name        string         `gorm:"not null" json:"name"`
	Phone       string         `json:"phone"`
	Role        string         `json:"role"`
	JoiningDate time.Time      `json:"joining_date"`
}

// Attendance records one employee's presence for one day
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	EmployeeID string     `gorm:"not null;index:idx_attendance_employee_date,unique" json:"employee_id"`
	Date       string     `gorm:"not null;index:idx_attendance_employee_date,unique" json:"date"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Status     string     `gorm:"not null;default:'Present'" json:"status"`
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Fabric{},
		&StockTransaction{},
		&CuttingRecord{},
		&SizeBreakdown{},
		&ManufacturingOrder{},
		&QRProduct{},
		&Employee{},
		&Attendance{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}

	return nil
}
