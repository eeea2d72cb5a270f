package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
	"github.com/peopledesk/peopledesk/internal/service"
)

var recruitCmd = &cobra.Command{
	Use:   "recruit",
	Short: "Job postings and candidate pipeline",
	Long: `Manage job postings and move candidates through the hiring pipeline:
applied -> screening -> interview -> offer -> hired, with rejection possible
at any stage before a final decision.`,
}

var (
	jobPostTitle       string
	jobPostDepartment  string
	jobPostDescription string
)

var recruitPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a job opening (hr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		job, err := rec.PostJob(jobPostTitle, jobPostDepartment, jobPostDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Posted %q in %s (%s)\n", job.Title, job.Department, job.ID)
		return nil
	},
}

var recruitCloseCmd = &cobra.Command{
	Use:   "close <job-id>",
	Short: "Close a job opening (hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		if err := rec.CloseJob(args[0]); err != nil {
			return err
		}
		fmt.Println("Closed.")
		return nil
	},
}

var jobListAll bool

var recruitJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job openings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		jobs, err := rec.ListJobs(!jobListAll)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No job openings.")
			return nil
		}
		for _, j := range jobs {
			state := "open"
			if !j.Open {
				state = "closed"
			}
			fmt.Printf("%-36s  %-30s  %-20s  %s\n", j.ID, j.Title, j.Department, state)
		}
		return nil
	},
}

var (
	candAddJob   string
	candAddName  string
	candAddEmail string
)

var recruitApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Add a candidate to an open job (hr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		cand, err := rec.AddCandidate(candAddJob, candAddName, candAddEmail)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s at stage %s (%s)\n", cand.Name, cand.Stage, cand.ID)
		return nil
	},
}

var candMoveStage string

var recruitMoveCmd = &cobra.Command{
	Use:   "move <candidate-id>",
	Short: "Move a candidate to the next stage (hr)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		cand, err := rec.MoveCandidate(args[0], hr.CandidateStage(candMoveStage))
		if err != nil {
			return err
		}
		fmt.Printf("%s is now at stage %s\n", cand.Name, cand.Stage)
		return nil
	},
}

var (
	pipelineJob   string
	pipelineStage string
)

var recruitPipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Show candidates for a job (hr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		rec := service.NewRecruitmentService(a.store, a.logger)
		candidates, err := rec.Pipeline(pipelineJob, hr.CandidateStage(pipelineStage))
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("No candidates.")
			return nil
		}
		for _, c := range candidates {
			fmt.Printf("%-36s  %-24s  %-24s  %s\n", c.ID, c.Name, c.Email, c.Stage)
		}
		return nil
	},
}

func init() {
	recruitPostCmd.Flags().StringVar(&jobPostTitle, "title", "", "job title (required)")
	recruitPostCmd.Flags().StringVar(&jobPostDepartment, "department", "", "hiring department (required)")
	recruitPostCmd.Flags().StringVar(&jobPostDescription, "description", "", "role description")
	_ = recruitPostCmd.MarkFlagRequired("title")
	_ = recruitPostCmd.MarkFlagRequired("department")

	recruitJobsCmd.Flags().BoolVar(&jobListAll, "all", false, "include closed jobs")

	recruitApplyCmd.Flags().StringVar(&candAddJob, "job", "", "job ID (required)")
	recruitApplyCmd.Flags().StringVar(&candAddName, "name", "", "candidate name (required)")
	recruitApplyCmd.Flags().StringVar(&candAddEmail, "email", "", "candidate email (required)")
	_ = recruitApplyCmd.MarkFlagRequired("job")
	_ = recruitApplyCmd.MarkFlagRequired("name")
	_ = recruitApplyCmd.MarkFlagRequired("email")

	recruitMoveCmd.Flags().StringVar(&candMoveStage, "stage", "", "target stage: screening, interview, offer, hired, rejected (required)")
	_ = recruitMoveCmd.MarkFlagRequired("stage")

	recruitPipelineCmd.Flags().StringVar(&pipelineJob, "job", "", "job ID (required)")
	recruitPipelineCmd.Flags().StringVar(&pipelineStage, "stage", "", "filter by stage")
	_ = recruitPipelineCmd.MarkFlagRequired("job")

	recruitCmd.AddCommand(recruitPostCmd, recruitCloseCmd, recruitJobsCmd, recruitApplyCmd, recruitMoveCmd, recruitPipelineCmd)
	rootCmd.AddCommand(recruitCmd)
}
