package service

import (
	"errors"
	"testing"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

func newTrainingService(t *testing.T) *TrainingService {
	t.Helper()
	return NewTrainingService(store.NewMemoryStore(), testLogger())
}

func addCourse(t *testing.T, svc *TrainingService) *hr.Course {
	t.Helper()
	course, err := svc.AddCourse("Go Fundamentals", "Intro to Go", 16)
	if err != nil {
		t.Fatalf("AddCourse() returned unexpected error: %v", err)
	}
	return course
}

func TestEnroll_StartsAtZeroProgress(t *testing.T) {
	svc := newTrainingService(t)
	course := addCourse(t, svc)

	enrollment, err := svc.Enroll("u1", course.ID)
	if err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}
	if enrollment.Status != hr.EnrollmentEnrolled || enrollment.Progress != 0 {
		t.Errorf("expected fresh enrollment at 0%%, got %s at %d%%", enrollment.Status, enrollment.Progress)
	}
}

func TestEnroll_OncePerUserAndCourse(t *testing.T) {
	svc := newTrainingService(t)
	course := addCourse(t, svc)

	if _, err := svc.Enroll("u1", course.ID); err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}
	if _, err := svc.Enroll("u1", course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled, got %v", err)
	}
	// A different user may still enroll.
	if _, err := svc.Enroll("u2", course.ID); err != nil {
		t.Errorf("expected second user's enrollment to succeed, got %v", err)
	}
}

func TestEnroll_UnknownCourse(t *testing.T) {
	svc := newTrainingService(t)

	if _, err := svc.Enroll("u1", "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestUpdateProgress_DrivesStatus(t *testing.T) {
	svc := newTrainingService(t)
	course := addCourse(t, svc)
	enrollment, err := svc.Enroll("u1", course.ID)
	if err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}

	tests := []struct {
		progress int
		want     hr.EnrollmentStatus
	}{
		{40, hr.EnrollmentInProgress},
		{100, hr.EnrollmentCompleted},
		{0, hr.EnrollmentEnrolled},
	}
	for _, tt := range tests {
		updated, err := svc.UpdateProgress(enrollment.ID, tt.progress)
		if err != nil {
			t.Fatalf("UpdateProgress(%d) returned unexpected error: %v", tt.progress, err)
		}
		if updated.Status != tt.want {
			t.Errorf("progress %d: expected status %s, got %s", tt.progress, tt.want, updated.Status)
		}
	}
}

func TestUpdateProgress_OutOfRangeRejected(t *testing.T) {
	svc := newTrainingService(t)
	course := addCourse(t, svc)
	enrollment, err := svc.Enroll("u1", course.ID)
	if err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}

	for _, progress := range []int{-1, 101} {
		if _, err := svc.UpdateProgress(enrollment.ID, progress); !errors.Is(err, ErrInvalidProgress) {
			t.Errorf("progress %d: expected ErrInvalidProgress, got %v", progress, err)
		}
	}
}

func TestEnrollments_FilteredByUser(t *testing.T) {
	svc := newTrainingService(t)
	course := addCourse(t, svc)

	if _, err := svc.Enroll("u1", course.ID); err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}
	if _, err := svc.Enroll("u2", course.ID); err != nil {
		t.Fatalf("Enroll() returned unexpected error: %v", err)
	}

	mine, err := svc.Enrollments("u1")
	if err != nil {
		t.Fatalf("Enrollments() returned unexpected error: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "u1" {
		t.Errorf("expected only u1's enrollment, got %v", mine)
	}
}
