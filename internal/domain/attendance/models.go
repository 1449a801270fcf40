package attendance

import "time"

// Record is one employee-day of attendance. WorkedHours is filled in at
// check-out, after subtracting the configured break.
type Record struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	Date          time.Time  `json:"date"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut,omitempty"`
	CheckInImage  string     `json:"checkInImage,omitempty"`
	CheckOutImage string     `json:"checkOutImage,omitempty"`
	WorkedHours   float64    `json:"workedHours"`
}

// DayEntry is one row of the daily report: a record joined with who it
// belongs to, or an absence marker when no record exists.
type DayEntry struct {
	EmployeeID string  `json:"employeeId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Present    bool    `json:"present"`
	Record     *Record `json:"record,omitempty"`
}
