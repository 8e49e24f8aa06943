// Package lifecycle is the reservation state table. It holds no I/O: given a
// status it answers which equipment status follows, whether a history row is
// written and whether the reservation row is removed.
package lifecycle

import (
	"fmt"

	"equiptrack/internal/domain/status"
)

// Effect is the outcome of moving a reservation into a status.
// An empty Equipment means the equipment row is left untouched.
type Effect struct {
	Equipment          status.EquipmentName
	WritesHistory      bool
	History            status.HistoryName
	DeletesReservation bool
}

var transitions = map[status.ReservationName]Effect{
	status.ReservationPending:   {Equipment: status.EquipmentReserved},
	status.ReservationConfirmed: {Equipment: status.EquipmentReserved},
	status.ReservationIssued:    {Equipment: status.EquipmentIssued},

	status.ReservationCancelled:   {WritesHistory: true, History: status.HistoryCancelled, DeletesReservation: true},
	status.ReservationRejected:    {WritesHistory: true, History: status.HistoryRejected, DeletesReservation: true},
	status.ReservationReturned:    {WritesHistory: true, History: status.HistoryReturned, DeletesReservation: true},
	status.ReservationNotReturned: {WritesHistory: true, History: status.HistoryNotReturned, DeletesReservation: true},
}

// Transition returns the effect of updating a reservation to next. The
// current status does not influence the outcome.
func Transition(next status.ReservationName) (Effect, error) {
	eff, ok := transitions[next]
	if !ok {
		return Effect{}, fmt.Errorf("unknown reservation status %q", next)
	}
	return eff, nil
}

// IsTerminal reports whether a reservation in s stops claiming its equipment.
func IsTerminal(s status.ReservationName) bool {
	return transitions[s].DeletesReservation
}

// OnCreate is the equipment status after any successful create, whatever the
// requested reservation status.
func OnCreate() status.EquipmentName {
	return status.EquipmentReserved
}

// OnDelete is the equipment status after a reservation is deleted directly,
// and for the previous equipment when an update moves a reservation away.
func OnDelete() status.EquipmentName {
	return status.EquipmentAvailable
}

// HistoryEffect is the equipment status implied by recording h directly,
// outside the reservation path.
func HistoryEffect(h status.HistoryName) (status.EquipmentName, bool) {
	switch h {
	case status.HistoryNotReturned:
		return status.EquipmentIssued, true
	case status.HistoryReturned:
		return status.EquipmentAvailable, true
	default:
		return "", false
	}
}
