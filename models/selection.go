package models

// SelectionPricing carries every chargeable sub-component of a single
// selection. Fields are typed int64 currency units with zero defaults,
// so a missing sub-price contributes 0 to a delta instead of
// poisoning the running total.
type SelectionPricing struct {
	TotalAdultPrice      int64 `bson:"total_adult_price" json:"totalAdultPrice"`
	GSTAdultPrice        int64 `bson:"gst_adult_price" json:"gstAdultPrice"`
	TotalChildPrice      int64 `bson:"total_child_price" json:"totalChildPrice"`
	GSTChildPrice        int64 `bson:"gst_child_price" json:"gstChildPrice"`
	TotalExtraAdultPrice int64 `bson:"total_extra_adult_price" json:"totalExtraAdultPrice"`
	GSTExtraAdultPrice   int64 `bson:"gst_extra_adult_price" json:"gstExtraAdultPrice"`
}

// Total sums all chargeable sub-components.
func (p SelectionPricing) Total() int64 {
	return p.TotalAdultPrice + p.GSTAdultPrice +
		p.TotalChildPrice + p.GSTChildPrice +
		p.TotalExtraAdultPrice + p.GSTExtraAdultPrice
}

// RoomSelection is the chosen hotel room (and meal plan) for one
// night-block of the package.
type RoomSelection struct {
	BlockIndex int              `bson:"block_index" json:"blockIndex"`
	HotelID    string           `bson:"hotel_id" json:"hotelId"`
	RoomID     string           `bson:"room_id" json:"roomId"`
	MealPlan   string           `bson:"meal_plan" json:"mealPlan"`
	Pricing    SelectionPricing `bson:"pricing" json:"pricing"`
}

// ActivitySelection is the chosen activity for one day/slot.
type ActivitySelection struct {
	Day        int              `bson:"day" json:"day"`
	Slot       string           `bson:"slot" json:"slot"`
	ActivityID string           `bson:"activity_id" json:"activityId"`
	Pricing    SelectionPricing `bson:"pricing" json:"pricing"`
}

// VehicleSelection is the chosen vehicle for the whole package.
type VehicleSelection struct {
	VehicleID string           `bson:"vehicle_id" json:"vehicleId"`
	Pricing   SelectionPricing `bson:"pricing" json:"pricing"`
}

// PackageSelection is the traveler's current configuration for a
// package instance. It lives on the booking draft while in progress
// and is snapshotted onto the Booking at checkout.
type PackageSelection struct {
	Rooms      []RoomSelection     `bson:"rooms" json:"rooms"`
	Activities []ActivitySelection `bson:"activities" json:"activities"`
	Vehicle    *VehicleSelection   `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
}
