package domain

// EngineerStatus enumerates dispatch availability.
type EngineerStatus string

const (
	EngineerStatusAvailable EngineerStatus = "Available"
	EngineerStatusOnCall    EngineerStatus = "On call"
	EngineerStatusOOH       EngineerStatus = "OOH"
	EngineerStatusOffShift  EngineerStatus = "Off shift"
)

// Engineer is a directory entry for a dispatchable field engineer.
type Engineer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Status      EngineerStatus `json:"status"`
	IsOnHoliday bool           `json:"isOnHoliday"`
	ShiftTiming string         `json:"shiftTiming,omitempty"`
}
