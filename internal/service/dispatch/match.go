package dispatch

import (
	"market-dispatch/internal/domain"
	"market-dispatch/internal/geo"
)

// unknownPositionScoreKm is the penalty score for couriers that never
// reported a location. They stay in the running as a last resort instead
// of being excluded, so dispatch still happens when nobody has a fresh
// position.
const unknownPositionScoreKm = 100000.0

type candidate struct {
	courier domain.Courier
	score   float64
}

// selectCourier picks the eligible courier closest to the order. Pure:
// no side effects, commitment is the assignment transaction's job.
// Ties keep the earlier courier in registry order.
func selectCourier(order *domain.Order, couriers []domain.Courier) (candidate, bool) {
	if order.Lat == nil || order.Lng == nil || len(couriers) == 0 {
		return candidate{}, false
	}

	best := candidate{score: -1}
	for _, c := range couriers {
		score := unknownPositionScoreKm
		if c.HasPosition() {
			score = geo.DistanceKm(*order.Lat, *order.Lng, *c.CurrentLat, *c.CurrentLng)
		}
		if best.score < 0 || score < best.score {
			best = candidate{courier: c, score: score}
		}
	}
	return best, true
}
