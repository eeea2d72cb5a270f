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

// RecruitmentService errors.
var (
	ErrJobNotFound        = errors.New("job posting not found")
	ErrJobClosed          = errors.New("job posting is closed")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrIllegalStageChange = errors.New("illegal pipeline stage transition")
)

// RecruitmentService manages job postings and the candidate pipeline.
type RecruitmentService struct {
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewRecruitmentService creates a new RecruitmentService.
func NewRecruitmentService(st store.Store, logger *slog.Logger) *RecruitmentService {
	return &RecruitmentService{store: st, logger: logger}
}

// PostJob opens a new position.
func (s *RecruitmentService) PostJob(title, department, description string) (*hr.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []hr.JobPosting
	if _, err := s.store.Get(store.KeyJobs, &jobs); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	job := hr.JobPosting{
		ID:          uuid.NewString(),
		Title:       title,
		Department:  department,
		Description: description,
		Open:        true,
		CreatedAt:   time.Now().UTC(),
	}
	jobs = append(jobs, job)
	if err := s.store.Set(store.KeyJobs, jobs); err != nil {
		return nil, fmt.Errorf("persist jobs: %w", err)
	}
	s.logger.Info("job posted", "title", title, "department", department)
	return &job, nil
}

// CloseJob marks a position closed; closed jobs accept no new candidates.
func (s *RecruitmentService) CloseJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []hr.JobPosting
	if _, err := s.store.Get(store.KeyJobs, &jobs); err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	for i := range jobs {
		if jobs[i].ID == jobID {
			jobs[i].Open = false
			if err := s.store.Set(store.KeyJobs, jobs); err != nil {
				return fmt.Errorf("persist jobs: %w", err)
			}
			s.logger.Info("job closed", "job_id", jobID)
			return nil
		}
	}
	return ErrJobNotFound
}

// ListJobs returns all postings; openOnly filters to open ones.
func (s *RecruitmentService) ListJobs(openOnly bool) ([]hr.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []hr.JobPosting
	if _, err := s.store.Get(store.KeyJobs, &jobs); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	if !openOnly {
		return jobs, nil
	}
	var result []hr.JobPosting
	for i := range jobs {
		if jobs[i].Open {
			result = append(result, jobs[i])
		}
	}
	return result, nil
}

// AddCandidate attaches an applicant to an open job at the applied stage.
func (s *RecruitmentService) AddCandidate(jobID, name, email string) (*hr.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []hr.JobPosting
	if _, err := s.store.Get(store.KeyJobs, &jobs); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	found := false
	for i := range jobs {
		if jobs[i].ID == jobID {
			if !jobs[i].Open {
				return nil, ErrJobClosed
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrJobNotFound
	}

	var candidates []hr.Candidate
	if _, err := s.store.Get(store.KeyCandidates, &candidates); err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	candidate := hr.Candidate{
		ID:        uuid.NewString(),
		JobID:     jobID,
		Name:      name,
		Email:     email,
		Stage:     hr.StageApplied,
		AppliedAt: time.Now().UTC(),
	}
	candidates = append(candidates, candidate)
	if err := s.store.Set(store.KeyCandidates, candidates); err != nil {
		return nil, fmt.Errorf("persist candidates: %w", err)
	}
	s.logger.Info("candidate added", "job_id", jobID, "name", name)
	return &candidate, nil
}

// MoveCandidate advances a candidate to the next pipeline stage or rejects
// them. Only legal transitions are accepted.
func (s *RecruitmentService) MoveCandidate(candidateID string, stage hr.CandidateStage) (*hr.Candidate, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrIllegalStageChange, stage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []hr.Candidate
	if _, err := s.store.Get(store.KeyCandidates, &candidates); err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	idx := -1
	for i := range candidates {
		if candidates[i].ID == candidateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCandidateNotFound
	}
	if !candidates[idx].Stage.CanTransitionTo(stage) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalStageChange, candidates[idx].Stage, stage)
	}

	candidates[idx].Stage = stage
	if err := s.store.Set(store.KeyCandidates, candidates); err != nil {
		return nil, fmt.Errorf("persist candidates: %w", err)
	}
	s.logger.Info("candidate moved", "candidate_id", candidateID, "stage", stage)
	candidate := candidates[idx]
	return &candidate, nil
}

// Pipeline returns the candidates for a job, optionally filtered by stage
// (empty matches all).
func (s *RecruitmentService) Pipeline(jobID string, stage hr.CandidateStage) ([]hr.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []hr.Candidate
	if _, err := s.store.Get(store.KeyCandidates, &candidates); err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	var result []hr.Candidate
	for i := range candidates {
		if jobID != "" && candidates[i].JobID != jobID {
			continue
		}
		if stage != "" && candidates[i].Stage != stage {
			continue
		}
		result = append(result, candidates[i])
	}
	return result, nil
}
