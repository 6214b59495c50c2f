package models

// Role is the staff role carried in tokens for audit attribution.
// CUSTOMER exists as a caller role but is never an employee role.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleKitchen  Role = "KITCHEN"
	RoleCashier  Role = "CASHIER"
	RoleAdmin    Role = "ADMIN"
)

// EmployeeRoles are the roles an Employee record may hold.
var EmployeeRoles = []Role{RoleStaff, RoleKitchen, RoleCashier, RoleAdmin}

func IsEmployeeRole(r Role) bool {
	for _, valid := range EmployeeRoles {
		if r == valid {
			return true
		}
	}
	return false
}

type TableStatus string

const (
	TableEmpty    TableStatus = "EMPTY"
	TableOccupied TableStatus = "OCCUPIED"
	TableDirty    TableStatus = "DIRTY"
	TableReserved TableStatus = "RESERVED"
)

type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "PENDING"
	ItemPreparing OrderItemStatus = "PREPARING"
	ItemReady     OrderItemStatus = "READY"
	ItemServed    OrderItemStatus = "SERVED"
	ItemCancelled OrderItemStatus = "CANCELLED"
)

type ProductCategory string

const (
	CategoryCombo   ProductCategory = "COMBO"
	CategoryBroth   ProductCategory = "BROTH"
	CategoryMeat    ProductCategory = "MEAT"
	CategorySeafood ProductCategory = "SEAFOOD"
	CategoryVeggie  ProductCategory = "VEGGIE"
	CategoryDrink   ProductCategory = "DRINK"
	CategoryOther   ProductCategory = "OTHER"
)

type ItemType string

const (
	TypeSingle ItemType = "SINGLE"
	TypeCombo  ItemType = "COMBO"
)

type PaymentMethod string

const (
	PayCash PaymentMethod = "CASH"
	PayQR   PaymentMethod = "QR"
	PayCard PaymentMethod = "CARD"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayQR, PayCard:
		return true
	}
	return false
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationArrived   ReservationStatus = "ARRIVED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)
