package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/database"
	"github.com/cumpas/cumpas-sync/internal/models"
)

// recentAttendanceLimit caps the attendance rows embedded per class on list.
const recentAttendanceLimit = 10

// TimetableServiceProvider defines the interface for timetable services.
type TimetableServiceProvider interface {
	ListClasses(ctx context.Context, userID string) ([]models.Class, error)
	CreateClass(ctx context.Context, userID string, in models.ClassInput) (models.Class, error)
	UpdateClass(ctx context.Context, userID, id string, patch models.ClassPatch) (models.Class, error)
	DeleteClass(ctx context.Context, userID, id string) error
	ListAttendance(ctx context.Context, userID, classID string) ([]models.Attendance, error)
	MarkAttendance(ctx context.Context, userID string, in models.AttendanceInput) (models.Attendance, error)
}

// TimetableService provides business logic for classes and attendance.
type TimetableService struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(db *sqlx.DB) *TimetableService {
	return &TimetableService{db: db, now: time.Now}
}

const (
	classColumns      = "id, user_id, name, instructor, room, day_of_week, start_time, end_time, color, created_at"
	attendanceColumns = "id, class_id, user_id, date, status, created_at"
)

// ListClasses returns the weekly timetable ordered by day and start time,
// each class carrying its most recent attendance rows.
func (s *TimetableService) ListClasses(ctx context.Context, userID string) ([]models.Class, error) {
	classes := []models.Class{}
	err := s.db.SelectContext(ctx, &classes, s.db.Rebind(
		"SELECT "+classColumns+" FROM classes WHERE user_id = ? ORDER BY day_of_week, start_time"), userID)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if len(classes) == 0 {
		return classes, nil
	}

	var rows []models.Attendance
	err = s.db.SelectContext(ctx, &rows, s.db.Rebind(
		"SELECT "+attendanceColumns+" FROM attendance WHERE user_id = ? ORDER BY class_id, date DESC, created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	byClass := make(map[string][]models.Attendance, len(classes))
	for _, a := range rows {
		if len(byClass[a.ClassID]) < recentAttendanceLimit {
			byClass[a.ClassID] = append(byClass[a.ClassID], a)
		}
	}
	for i := range classes {
		classes[i].Attendance = byClass[classes[i].ID]
		if classes[i].Attendance == nil {
			classes[i].Attendance = []models.Attendance{}
		}
	}
	return classes, nil
}

func (s *TimetableService) getClass(ctx context.Context, db sqlx.ExtContext, userID, id string) (models.Class, error) {
	var class models.Class
	err := getOwned(ctx, db, &class, "SELECT "+classColumns+" FROM classes WHERE id = ? AND user_id = ?", id, userID)
	return class, err
}

// CreateClass adds a class to the timetable.
func (s *TimetableService) CreateClass(ctx context.Context, userID string, in models.ClassInput) (models.Class, error) {
	if err := checkClassTimes(in.StartTime, in.EndTime); err != nil {
		return models.Class{}, err
	}

	class := models.Class{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       in.Name,
		Instructor: in.Instructor,
		Room:       in.Room,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Color:      in.Color,
		CreatedAt:  s.now().UTC(),
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO classes (id, user_id, name, instructor, room, day_of_week, start_time, end_time, color, created_at)
		VALUES (:id, :user_id, :name, :instructor, :room, :day_of_week, :start_time, :end_time, :color, :created_at)`, class)
	if err != nil {
		return models.Class{}, fmt.Errorf("insert class: %w", err)
	}
	return class, nil
}

// UpdateClass applies patch. The resulting start time must stay before the
// end time.
func (s *TimetableService) UpdateClass(ctx context.Context, userID, id string, patch models.ClassPatch) (models.Class, error) {
	if patch.StartTime != nil || patch.EndTime != nil {
		current, err := s.getClass(ctx, s.db, userID, id)
		if err != nil {
			return models.Class{}, err
		}
		start, end := current.StartTime, current.EndTime
		if patch.StartTime != nil {
			start = *patch.StartTime
		}
		if patch.EndTime != nil {
			end = *patch.EndTime
		}
		if err := checkClassTimes(start, end); err != nil {
			return models.Class{}, err
		}
	}

	b := &updateBuilder{}
	setIf(b, "name", patch.Name)
	setIf(b, "instructor", patch.Instructor)
	setIf(b, "room", patch.Room)
	setIf(b, "day_of_week", patch.DayOfWeek)
	setIf(b, "start_time", patch.StartTime)
	setIf(b, "end_time", patch.EndTime)
	setIf(b, "color", patch.Color)

	if err := updateOwned(ctx, s.db, "classes", id, userID, b); err != nil {
		return models.Class{}, err
	}
	return s.getClass(ctx, s.db, userID, id)
}

// DeleteClass removes a class and, through the foreign key, its attendance.
func (s *TimetableService) DeleteClass(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "classes", id, userID)
}

// ListAttendance returns all attendance rows of an owned class, newest first.
func (s *TimetableService) ListAttendance(ctx context.Context, userID, classID string) ([]models.Attendance, error) {
	if err := ensureOwned(ctx, s.db, "classes", classID, userID); err != nil {
		return nil, err
	}

	rows := []models.Attendance{}
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		"SELECT "+attendanceColumns+" FROM attendance WHERE class_id = ? AND user_id = ? ORDER BY date DESC, created_at DESC"),
		classID, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// MarkAttendance records attendance for an owned class. Every call inserts
// a new row, even for a date that already has one.
func (s *TimetableService) MarkAttendance(ctx context.Context, userID string, in models.AttendanceInput) (models.Attendance, error) {
	now := s.now().UTC()
	record := models.Attendance{
		ID:        uuid.New().String(),
		ClassID:   in.ClassID,
		UserID:    userID,
		Date:      in.Date.UTC(),
		Status:    in.Status,
		CreatedAt: now,
	}
	if in.Date.IsZero() {
		record.Date = now
	}

	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := ensureOwned(ctx, tx, "classes", in.ClassID, userID); err != nil {
			return err
		}
		_, err := tx.NamedExecContext(ctx, `INSERT INTO attendance (id, class_id, user_id, date, status, created_at)
			VALUES (:id, :class_id, :user_id, :date, :status, :created_at)`, record)
		if err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Attendance{}, err
	}
	return record, nil
}

// checkClassTimes expects zero-padded HH:MM values, which order lexically.
func checkClassTimes(start, end string) error {
	if start >= end {
		return fmt.Errorf("%w: endTime must be after startTime", ErrValidation)
	}
	return nil
}
