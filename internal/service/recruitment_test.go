package service

import (
	"errors"
	"testing"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

func newRecruitmentService(t *testing.T) *RecruitmentService {
	t.Helper()
	return NewRecruitmentService(store.NewMemoryStore(), testLogger())
}

func postJob(t *testing.T, svc *RecruitmentService) *hr.JobPosting {
	t.Helper()
	job, err := svc.PostJob("Backend Engineer", "Engineering", "Go services")
	if err != nil {
		t.Fatalf("PostJob() returned unexpected error: %v", err)
	}
	return job
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

func TestPostJob_StartsOpen(t *testing.T) {
	svc := newRecruitmentService(t)

	job := postJob(t, svc)
	if !job.Open {
		t.Error("expected new posting to be open")
	}
}

func TestCloseJob_StopsAcceptingCandidates(t *testing.T) {
	svc := newRecruitmentService(t)
	job := postJob(t, svc)

	if err := svc.CloseJob(job.ID); err != nil {
		t.Fatalf("CloseJob() returned unexpected error: %v", err)
	}
	if _, err := svc.AddCandidate(job.ID, "Ada", "ada@example.com"); !errors.Is(err, ErrJobClosed) {
		t.Errorf("expected ErrJobClosed, got %v", err)
	}
}

func TestListJobs_OpenOnlyFilter(t *testing.T) {
	svc := newRecruitmentService(t)
	open := postJob(t, svc)
	closed := postJob(t, svc)
	if err := svc.CloseJob(closed.ID); err != nil {
		t.Fatalf("CloseJob() returned unexpected error: %v", err)
	}

	jobs, err := svc.ListJobs(true)
	if err != nil {
		t.Fatalf("ListJobs() returned unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != open.ID {
		t.Errorf("expected only the open job, got %v", jobs)
	}

	all, err := svc.ListJobs(false)
	if err != nil {
		t.Fatalf("ListJobs() returned unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 jobs unfiltered, got %d", len(all))
	}
}

func TestCloseJob_Unknown(t *testing.T) {
	svc := newRecruitmentService(t)

	if err := svc.CloseJob("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Candidate pipeline
// ---------------------------------------------------------------------------

func TestAddCandidate_StartsApplied(t *testing.T) {
	svc := newRecruitmentService(t)
	job := postJob(t, svc)

	cand, err := svc.AddCandidate(job.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}
	if cand.Stage != hr.StageApplied {
		t.Errorf("expected applied stage, got %s", cand.Stage)
	}
}

func TestMoveCandidate_ForwardThroughPipeline(t *testing.T) {
	svc := newRecruitmentService(t)
	job := postJob(t, svc)
	cand, err := svc.AddCandidate(job.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}

	for _, stage := range []hr.CandidateStage{hr.StageScreening, hr.StageInterview, hr.StageOffer, hr.StageHired} {
		moved, err := svc.MoveCandidate(cand.ID, stage)
		if err != nil {
			t.Fatalf("MoveCandidate(%s) returned unexpected error: %v", stage, err)
		}
		if moved.Stage != stage {
			t.Errorf("expected stage %s, got %s", stage, moved.Stage)
		}
	}
}

func TestMoveCandidate_IllegalTransitions(t *testing.T) {
	svc := newRecruitmentService(t)
	job := postJob(t, svc)

	t.Run("skipping a stage", func(t *testing.T) {
		cand, err := svc.AddCandidate(job.ID, "Bob", "bob@example.com")
		if err != nil {
			t.Fatalf("AddCandidate() returned unexpected error: %v", err)
		}
		if _, err := svc.MoveCandidate(cand.ID, hr.StageOffer); !errors.Is(err, ErrIllegalStageChange) {
			t.Errorf("expected ErrIllegalStageChange, got %v", err)
		}
	})

	t.Run("moving a rejected candidate", func(t *testing.T) {
		cand, err := svc.AddCandidate(job.ID, "Cleo", "cleo@example.com")
		if err != nil {
			t.Fatalf("AddCandidate() returned unexpected error: %v", err)
		}
		if _, err := svc.MoveCandidate(cand.ID, hr.StageRejected); err != nil {
			t.Fatalf("MoveCandidate() returned unexpected error: %v", err)
		}
		if _, err := svc.MoveCandidate(cand.ID, hr.StageScreening); !errors.Is(err, ErrIllegalStageChange) {
			t.Errorf("expected ErrIllegalStageChange, got %v", err)
		}
	})

	t.Run("unknown stage", func(t *testing.T) {
		cand, err := svc.AddCandidate(job.ID, "Dee", "dee@example.com")
		if err != nil {
			t.Fatalf("AddCandidate() returned unexpected error: %v", err)
		}
		if _, err := svc.MoveCandidate(cand.ID, "shortlisted"); !errors.Is(err, ErrIllegalStageChange) {
			t.Errorf("expected ErrIllegalStageChange, got %v", err)
		}
	})
}

func TestMoveCandidate_RejectableFromAnyActiveStage(t *testing.T) {
	svc := newRecruitmentService(t)
	job := postJob(t, svc)
	cand, err := svc.AddCandidate(job.ID, "Eve", "eve@example.com")
	if err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}
	if _, err := svc.MoveCandidate(cand.ID, hr.StageScreening); err != nil {
		t.Fatalf("MoveCandidate() returned unexpected error: %v", err)
	}

	moved, err := svc.MoveCandidate(cand.ID, hr.StageRejected)
	if err != nil {
		t.Fatalf("MoveCandidate() returned unexpected error: %v", err)
	}
	if moved.Stage != hr.StageRejected {
		t.Errorf("expected rejected stage, got %s", moved.Stage)
	}
}

func TestPipeline_FiltersByJobAndStage(t *testing.T) {
	svc := newRecruitmentService(t)
	jobA := postJob(t, svc)
	jobB := postJob(t, svc)

	a1, err := svc.AddCandidate(jobA.ID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}
	if _, err := svc.AddCandidate(jobA.ID, "Bob", "bob@example.com"); err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}
	if _, err := svc.AddCandidate(jobB.ID, "Cleo", "cleo@example.com"); err != nil {
		t.Fatalf("AddCandidate() returned unexpected error: %v", err)
	}
	if _, err := svc.MoveCandidate(a1.ID, hr.StageScreening); err != nil {
		t.Fatalf("MoveCandidate() returned unexpected error: %v", err)
	}

	forJob, err := svc.Pipeline(jobA.ID, "")
	if err != nil {
		t.Fatalf("Pipeline() returned unexpected error: %v", err)
	}
	if len(forJob) != 2 {
		t.Errorf("expected 2 candidates for job A, got %d", len(forJob))
	}

	screening, err := svc.Pipeline(jobA.ID, hr.StageScreening)
	if err != nil {
		t.Fatalf("Pipeline() returned unexpected error: %v", err)
	}
	if len(screening) != 1 || screening[0].ID != a1.ID {
		t.Errorf("expected only the screening candidate, got %v", screening)
	}
}
