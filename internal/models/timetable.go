package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Class is a weekly timetable slot.
type Class struct {
	ID         string       `json:"id" db:"id"`
	UserID     string       `json:"userId" db:"user_id"`
	Name       string       `json:"name" db:"name"`
	Instructor string       `json:"instructor" db:"instructor"`
	Room       string       `json:"room" db:"room"`
	DayOfWeek  int          `json:"dayOfWeek" db:"day_of_week"` // 0 = Sunday
	StartTime  string       `json:"startTime" db:"start_time"`  // HH:MM
	EndTime    string       `json:"endTime" db:"end_time"`      // HH:MM
	Color      string       `json:"color" db:"color"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	Attendance []Attendance `json:"attendance,omitempty" db:"-"`
}

type ClassInput struct {
	Name       string `json:"name" validate:"required,max=200"`
	Instructor string `json:"instructor" validate:"max=120"`
	Room       string `json:"room" validate:"max=60"`
	DayOfWeek  int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime  string `json:"startTime" validate:"required,clocktime"`
	EndTime    string `json:"endTime" validate:"required,clocktime"`
	Color      string `json:"color"`
}

type ClassPatch struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Instructor *string `json:"instructor" validate:"omitempty,max=120"`
	Room       *string `json:"room" validate:"omitempty,max=60"`
	DayOfWeek  *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime  *string `json:"startTime" validate:"omitempty,clocktime"`
	EndTime    *string `json:"endTime" validate:"omitempty,clocktime"`
	Color      *string `json:"color"`
}

// Attendance records whether the student attended a class on a date.
type Attendance struct {
	ID        string    `json:"id" db:"id"`
	ClassID   string    `json:"classId" db:"class_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Date      time.Time `json:"date" db:"date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AttendanceInput is the payload for POST /api/timetable/attendance. A zero
// Date means "now".
type AttendanceInput struct {
	ClassID string    `json:"classId" validate:"required"`
	Date    Timestamp `json:"date"`
	Status  string    `json:"status" validate:"required,oneof=present absent late"`
}
