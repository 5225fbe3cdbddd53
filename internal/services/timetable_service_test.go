package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/models"
)

func TestTimetableService_ClassesOrderedByDayAndTime(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	svc := NewTimetableService(db)
	ctx := context.Background()

	for _, in := range []models.ClassInput{
		{Name: "Physics", DayOfWeek: 3, StartTime: "09:00", EndTime: "10:30"},
		{Name: "Algebra", DayOfWeek: 1, StartTime: "13:00", EndTime: "14:00"},
		{Name: "History", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
	} {
		_, err := svc.CreateClass(ctx, a.ID, in)
		require.NoError(t, err)
	}

	classes, err := svc.ListClasses(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "History", classes[0].Name)
	assert.Equal(t, "Algebra", classes[1].Name)
	assert.Equal(t, "Physics", classes[2].Name)
	assert.NotNil(t, classes[0].Attendance)
}

func TestTimetableService_RejectsInvertedTimes(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	svc := NewTimetableService(db)
	ctx := context.Background()

	_, err := svc.CreateClass(ctx, a.ID, models.ClassInput{Name: "Bad", StartTime: "10:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, ErrValidation)

	class, err := svc.CreateClass(ctx, a.ID, models.ClassInput{Name: "Good", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	_, err = svc.UpdateClass(ctx, a.ID, class.ID, models.ClassPatch{EndTime: ptr("09:59")})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateClass(ctx, a.ID, class.ID, models.ClassPatch{EndTime: ptr("12:00"), Room: ptr("B-201")})
	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.EndTime)
	assert.Equal(t, "B-201", updated.Room)
}

func TestTimetableService_Attendance(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	b := createTestUser(t, db, "b@x.com")
	svc := NewTimetableService(db)
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, a.ID, models.ClassInput{Name: "Chem", DayOfWeek: 2, StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	_, err = svc.MarkAttendance(ctx, b.ID, models.AttendanceInput{ClassID: class.ID, Status: models.AttendanceAbsent})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListAttendance(ctx, b.ID, class.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	day := at("2026-09-01T10:00:00Z")
	for i := 0; i < 12; i++ {
		rec, err := svc.MarkAttendance(ctx, a.ID, models.AttendanceInput{
			ClassID: class.ID,
			Date:    models.Timestamp{Time: day.Add(time.Duration(i) * 7 * 24 * time.Hour)},
			Status:  models.AttendancePresent,
		})
		require.NoError(t, err, fmt.Sprintf("week %d", i))
		assert.Equal(t, a.ID, rec.UserID)
	}

	// Same date twice is stored twice.
	_, err = svc.MarkAttendance(ctx, a.ID, models.AttendanceInput{ClassID: class.ID, Date: models.Timestamp{Time: day}, Status: models.AttendanceLate})
	require.NoError(t, err)

	all, err := svc.ListAttendance(ctx, a.ID, class.ID)
	require.NoError(t, err)
	assert.Len(t, all, 13)
	assert.True(t, all[0].Date.After(all[1].Date))

	classes, err := svc.ListClasses(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Len(t, classes[0].Attendance, recentAttendanceLimit)
	assert.True(t, classes[0].Attendance[0].Date.Equal(day.Add(11*7*24*time.Hour)))

	require.NoError(t, svc.DeleteClass(ctx, a.ID, class.ID))
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM attendance"))
	assert.Zero(t, n)
}
