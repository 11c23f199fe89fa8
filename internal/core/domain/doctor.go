package domain

import "sort"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

type TimeSlot struct {
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Status    SlotStatus `json:"status"`
}

// DoctorSearchResult carries the per-day slot map keyed by YYYY-MM-DD.
type DoctorSearchResult struct {
	ID             int64                 `json:"id"`
	FullName       string                `json:"fullName"`
	Specialization string                `json:"specialization"`
	Location       string                `json:"location"`
	Rating         float64               `json:"rating"`
	Availability   map[string][]TimeSlot `json:"availability"`
}

// Dates returns the availability keys in ascending order.
func (d DoctorSearchResult) Dates() []string {
	dates := make([]string, 0, len(d.Availability))
	for day := range d.Availability {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	return dates
}

// OpenSlots returns the AVAILABLE slots of one day.
func (d DoctorSearchResult) OpenSlots(date string) []TimeSlot {
	var open []TimeSlot
	for _, s := range d.Availability[date] {
		if s.Status == SlotAvailable {
			open = append(open, s)
		}
	}
	return open
}

// SearchCriteria are all optional; zero values are left out of the query.
type SearchCriteria struct {
	Specialization string  `json:"specialization,omitempty" query:"specialization"`
	Location       string  `json:"location,omitempty"       query:"location"`
	MinRating      float64 `json:"minRating,omitempty"      query:"minRating" validate:"gte=0,lte=5"`
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// DailyAvailability times are "HH:mm:ss".
type DailyAvailability struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime string    `json:"startTime" validate:"required,clocktime"`
	EndTime   string    `json:"endTime"   validate:"required,clocktime"`
}

// WeeklyAvailability replaces a doctor's recurring schedule wholesale.
type WeeklyAvailability struct {
	Availability          []DailyAvailability `json:"availability"          validate:"dive"`
	SlotDurationInMinutes int                 `json:"slotDurationInMinutes" validate:"required,min=10"`
}

type SetAvailabilityResult struct {
	DoctorID     int64  `json:"doctorId"`
	DoctorName   string `json:"doctorName"`
	Message      string `json:"message"`
	SlotsCreated int    `json:"slotsCreated"`
}

// DoctorProfileUpdate is sent as-is; the backend parses the rating.
type DoctorProfileUpdate struct {
	Specialization string `json:"specialization" validate:"required"`
	Location       string `json:"location"       validate:"required"`
	Rating         string `json:"rating"`
}
