// Package status holds the status dictionaries shared by equipment,
// reservations and history rows.
package status

type EquipmentName string

const (
	EquipmentAvailable EquipmentName = "available"
	EquipmentReserved  EquipmentName = "reserved"
	EquipmentIssued    EquipmentName = "issued"
)

type ReservationName string

const (
	ReservationPending     ReservationName = "pending"
	ReservationConfirmed   ReservationName = "confirmed"
	ReservationIssued      ReservationName = "issued"
	ReservationRejected    ReservationName = "rejected"
	ReservationCancelled   ReservationName = "cancelled"
	ReservationReturned    ReservationName = "returned"
	ReservationNotReturned ReservationName = "not_returned"
)

type HistoryName string

const (
	HistoryCancelled   HistoryName = "cancelled"
	HistoryRejected    HistoryName = "rejected"
	HistoryReturned    HistoryName = "returned"
	HistoryNotReturned HistoryName = "not_returned"
)

// Seeded value sets, in id order.
var (
	EquipmentNames = []EquipmentName{EquipmentAvailable, EquipmentReserved, EquipmentIssued}

	ReservationNames = []ReservationName{
		ReservationPending,
		ReservationConfirmed,
		ReservationIssued,
		ReservationRejected,
		ReservationCancelled,
		ReservationReturned,
		ReservationNotReturned,
	}

	HistoryNames = []HistoryName{HistoryCancelled, HistoryRejected, HistoryReturned, HistoryNotReturned}
)

type EquipmentStatus struct {
	ID   int64         `json:"id" gorm:"primaryKey"`
	Name EquipmentName `json:"name" gorm:"size:32;uniqueIndex;not null"`
}

func (EquipmentStatus) TableName() string { return "equipment_statuses" }

type ReservationStatus struct {
	ID   int64           `json:"id" gorm:"primaryKey"`
	Name ReservationName `json:"name" gorm:"size:32;uniqueIndex;not null"`
}

func (ReservationStatus) TableName() string { return "reservation_statuses" }

type HistoryStatus struct {
	ID   int64       `json:"id" gorm:"primaryKey"`
	Name HistoryName `json:"name" gorm:"size:32;uniqueIndex;not null"`
}

func (HistoryStatus) TableName() string { return "history_statuses" }
