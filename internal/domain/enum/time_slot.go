package enum

// TimeSlot represents a delivery window. The empty value means the operator
// has not picked a slot yet.
type TimeSlot string

const (
	TimeSlotNone      TimeSlot = ""
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// Valid reports whether the slot is a selectable delivery window.
func (t TimeSlot) Valid() bool {
	switch t {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening:
		return true
	}
	return false
}

// Label returns the human-readable window shown on the delivery step.
func (t TimeSlot) Label() string {
	switch t {
	case TimeSlotMorning:
		return "Morning (8am-12pm)"
	case TimeSlotAfternoon:
		return "Afternoon (12pm-5pm)"
	case TimeSlotEvening:
		return "Evening (5pm-8pm)"
	}
	return "Select time slot"
}
