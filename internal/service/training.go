package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// TrainingService errors.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in course")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
)

// TrainingService manages courses and enrollments: one enrollment per user
// per course, progress from 0 to 100.
type TrainingService struct {
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(st store.Store, logger *slog.Logger) *TrainingService {
	return &TrainingService{store: st, logger: logger}
}

// AddCourse puts a new course on offer.
func (s *TrainingService) AddCourse(title, description string, durationHrs int) (*hr.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []hr.Course
	if _, err := s.store.Get(store.KeyCourses, &courses); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	course := hr.Course{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DurationHrs: durationHrs,
	}
	courses = append(courses, course)
	if err := s.store.Set(store.KeyCourses, courses); err != nil {
		return nil, fmt.Errorf("persist courses: %w", err)
	}
	s.logger.Info("course added", "title", title)
	return &course, nil
}

// ListCourses returns every course on offer.
func (s *TrainingService) ListCourses() ([]hr.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []hr.Course
	if _, err := s.store.Get(store.KeyCourses, &courses); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	return courses, nil
}

// Enroll registers the user on a course. A second enrollment on the same
// course is rejected.
func (s *TrainingService) Enroll(userID, courseID string) (*hr.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []hr.Course
	if _, err := s.store.Get(store.KeyCourses, &courses); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	found := false
	for i := range courses {
		if courses[i].ID == courseID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCourseNotFound
	}

	var enrollments []hr.Enrollment
	if _, err := s.store.Get(store.KeyEnrollments, &enrollments); err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	for i := range enrollments {
		if enrollments[i].UserID == userID && enrollments[i].CourseID == courseID {
			return nil, ErrAlreadyEnrolled
		}
	}

	enrollment := hr.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		Status:     hr.EnrollmentEnrolled,
		Progress:   0,
		EnrolledAt: time.Now().UTC(),
	}
	enrollments = append(enrollments, enrollment)
	if err := s.store.Set(store.KeyEnrollments, enrollments); err != nil {
		return nil, fmt.Errorf("persist enrollments: %w", err)
	}
	s.logger.Info("enrolled", "user_id", userID, "course_id", courseID)
	return &enrollment, nil
}

// UpdateProgress sets the completion percentage; 100 marks the enrollment
// completed, anything above zero marks it in progress.
func (s *TrainingService) UpdateProgress(enrollmentID string, progress int) (*hr.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidProgress, progress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var enrollments []hr.Enrollment
	if _, err := s.store.Get(store.KeyEnrollments, &enrollments); err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	idx := -1
	for i := range enrollments {
		if enrollments[i].ID == enrollmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEnrollmentNotFound
	}

	enrollments[idx].Progress = progress
	switch {
	case progress == 100:
		enrollments[idx].Status = hr.EnrollmentCompleted
	case progress > 0:
		enrollments[idx].Status = hr.EnrollmentInProgress
	default:
		enrollments[idx].Status = hr.EnrollmentEnrolled
	}

	if err := s.store.Set(store.KeyEnrollments, enrollments); err != nil {
		return nil, fmt.Errorf("persist enrollments: %w", err)
	}
	s.logger.Info("progress updated", "enrollment_id", enrollmentID, "progress", progress)
	enrollment := enrollments[idx]
	return &enrollment, nil
}

// Enrollments returns the user's enrollments (all users when empty).
func (s *TrainingService) Enrollments(userID string) ([]hr.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var enrollments []hr.Enrollment
	if _, err := s.store.Get(store.KeyEnrollments, &enrollments); err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	if userID == "" {
		return enrollments, nil
	}
	var result []hr.Enrollment
	for i := range enrollments {
		if enrollments[i].UserID == userID {
			result = append(result, enrollments[i])
		}
	}
	return result, nil
}
