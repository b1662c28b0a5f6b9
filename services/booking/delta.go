package booking

import "wanderly/models"

// SelectionDelta returns the signed price change caused by swapping
// one chargeable component for another. All sub-prices are typed
// int64 fields with zero defaults, so a component that has no child
// or extra-adult price simply contributes 0. Room, meal plan,
// activity and vehicle swaps all fold through this one function.
func SelectionDelta(prev, next models.SelectionPricing) int64 {
	return next.Total() - prev.Total()
}

// SelectionSwap describes replacing one component of a package
// configuration. Kind selects which component list the swap targets;
// the index fields identify the slot being replaced.
type SelectionSwap struct {
	Kind       string                  `json:"kind"` // "room", "activity" or "vehicle"
	BlockIndex int                     `json:"blockIndex,omitempty"`
	Day        int                     `json:"day,omitempty"`
	Slot       string                  `json:"slot,omitempty"`
	HotelID    string                  `json:"hotelId,omitempty"`
	RoomID     string                  `json:"roomId,omitempty"`
	MealPlan   string                  `json:"mealPlan,omitempty"`
	ActivityID string                  `json:"activityId,omitempty"`
	VehicleID  string                  `json:"vehicleId,omitempty"`
	Pricing    models.SelectionPricing `json:"pricing"`
}

const (
	SwapKindRoom     = "room"
	SwapKindActivity = "activity"
	SwapKindVehicle  = "vehicle"
)

// ApplySwap replaces the targeted component in the selection and
// returns the signed price delta. Swapping a component for itself
// (identical ids and plan) is a no-op with delta 0 and applied false,
// so callers never re-issue a recompute cycle for it.
func ApplySwap(sel *models.PackageSelection, swap SelectionSwap) (delta int64, applied bool, err error) {
	switch swap.Kind {
	case SwapKindRoom:
		for i := range sel.Rooms {
			r := &sel.Rooms[i]
			if r.BlockIndex != swap.BlockIndex {
				continue
			}
			if r.HotelID == swap.HotelID && r.RoomID == swap.RoomID && r.MealPlan == swap.MealPlan {
				return 0, false, nil
			}
			delta = SelectionDelta(r.Pricing, swap.Pricing)
			r.HotelID = swap.HotelID
			r.RoomID = swap.RoomID
			r.MealPlan = swap.MealPlan
			r.Pricing = swap.Pricing
			return delta, true, nil
		}
		return 0, false, NewLifecycleError(CodeValidation, "no room selection for the given night-block")
	case SwapKindActivity:
		for i := range sel.Activities {
			a := &sel.Activities[i]
			if a.Day != swap.Day || a.Slot != swap.Slot {
				continue
			}
			if a.ActivityID == swap.ActivityID {
				return 0, false, nil
			}
			delta = SelectionDelta(a.Pricing, swap.Pricing)
			a.ActivityID = swap.ActivityID
			a.Pricing = swap.Pricing
			return delta, true, nil
		}
		// A day/slot with no prior activity starts from a zero-valued
		// pricing, so the delta is the full new price.
		sel.Activities = append(sel.Activities, models.ActivitySelection{
			Day:        swap.Day,
			Slot:       swap.Slot,
			ActivityID: swap.ActivityID,
			Pricing:    swap.Pricing,
		})
		return SelectionDelta(models.SelectionPricing{}, swap.Pricing), true, nil
	case SwapKindVehicle:
		if sel.Vehicle != nil {
			if sel.Vehicle.VehicleID == swap.VehicleID {
				return 0, false, nil
			}
			delta = SelectionDelta(sel.Vehicle.Pricing, swap.Pricing)
		} else {
			delta = SelectionDelta(models.SelectionPricing{}, swap.Pricing)
		}
		sel.Vehicle = &models.VehicleSelection{
			VehicleID: swap.VehicleID,
			Pricing:   swap.Pricing,
		}
		return delta, true, nil
	default:
		return 0, false, NewLifecycleError(CodeValidation, "unknown selection kind: "+swap.Kind)
	}
}
