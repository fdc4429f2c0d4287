package rules

import (
	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/metrics"
	"github.com/heinrichnel/fleetops/internal/models"
)

const (
	// SystemActor is stamped as the completing party on auto-completed
	// trips so operators can tell rule-driven completions from manual
	// ones.
	SystemActor = "System Auto-Complete"

	autoCompleteReason = "All investigations resolved - trip automatically completed"
)

// ShouldAutoCompleteTrip reports whether a trip qualifies for automatic
// completion: it is still active, at least one of its costs was ever
// flagged, and no flag remains unresolved. Trips with no flag history stay
// active until an operator completes them.
func ShouldAutoCompleteTrip(trip models.Trip) bool {
	if trip.Status != models.TripActive {
		return false
	}
	if metrics.FlaggedCount(trip.Costs) == 0 {
		return false
	}
	return metrics.UnresolvedFlagCount(trip.Costs) == 0
}

// maybeAutoComplete evaluates the trip in place after a cost mutation and
// stamps the completion fields when it qualifies. Reports whether the trip
// was completed.
func (e *Engine) maybeAutoComplete(trip *models.Trip) bool {
	if !ShouldAutoCompleteTrip(*trip) {
		return false
	}
	now := e.now()
	trip.Status = models.TripCompleted
	trip.CompletedAt = &now
	trip.CompletedBy = SystemActor
	trip.AutoCompletedAt = &now
	trip.AutoCompletedReason = autoCompleteReason
	log.WithFields(log.Fields{
		"trip_id": trip.ID,
		"fleet":   trip.FleetNumber,
	}).Info("trip auto-completed, all investigations resolved")
	return true
}
