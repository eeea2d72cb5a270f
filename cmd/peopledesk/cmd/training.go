package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Courses and enrollments",
}

var (
	courseAddTitle       string
	courseAddDescription string
	courseAddDuration    int
)

var trainingAddCourseCmd = &cobra.Command{
	Use:   "add-course",
	Short: "Add a course (hr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAnyRole(auth.RoleHR); err != nil {
			return err
		}

		tr := service.NewTrainingService(a.store, a.logger)
		course, err := tr.AddCourse(courseAddTitle, courseAddDescription, courseAddDuration)
		if err != nil {
			return err
		}
		fmt.Printf("Added course %q (%s)\n", course.Title, course.ID)
		return nil
	},
}

var trainingCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		tr := service.NewTrainingService(a.store, a.logger)
		courses, err := tr.ListCourses()
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses.")
			return nil
		}
		for _, c := range courses {
			if c.DurationHrs > 0 {
				fmt.Printf("%-36s  %-40s  %dh\n", c.ID, c.Title, c.DurationHrs)
			} else {
				fmt.Printf("%-36s  %s\n", c.ID, c.Title)
			}
		}
		return nil
	},
}

var trainingEnrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.requireAuth()
		if err != nil {
			return err
		}

		tr := service.NewTrainingService(a.store, a.logger)
		enrollment, err := tr.Enroll(user.ID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Enrolled (%s)\n", enrollment.ID)
		return nil
	},
}

var progressPercent int

var trainingProgressCmd = &cobra.Command{
	Use:   "progress <enrollment-id>",
	Short: "Update course progress",
	Long: `Update the completion percentage on an enrollment. Reaching 100
marks the course completed.

Example:
  peopledesk training progress <enrollment-id> --percent 60`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.requireAuth(); err != nil {
			return err
		}

		tr := service.NewTrainingService(a.store, a.logger)
		enrollment, err := tr.UpdateProgress(args[0], progressPercent)
		if err != nil {
			return err
		}
		fmt.Printf("Progress %d%% (%s)\n", enrollment.Progress, enrollment.Status)
		return nil
	},
}

var enrollmentsUser string

var trainingEnrollmentsCmd = &cobra.Command{
	Use:   "enrollments",
	Short: "List enrollments",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID, err := resolveSubjectUser(a, enrollmentsUser)
		if err != nil {
			return err
		}

		tr := service.NewTrainingService(a.store, a.logger)
		enrollments, err := tr.Enrollments(userID)
		if err != nil {
			return err
		}
		if len(enrollments) == 0 {
			fmt.Println("No enrollments.")
			return nil
		}
		for _, e := range enrollments {
			fmt.Printf("%-36s  course %-36s  %3d%%  %s\n", e.ID, e.CourseID, e.Progress, e.Status)
		}
		return nil
	},
}

func init() {
	trainingAddCourseCmd.Flags().StringVar(&courseAddTitle, "title", "", "course title (required)")
	trainingAddCourseCmd.Flags().StringVar(&courseAddDescription, "description", "", "course description")
	trainingAddCourseCmd.Flags().IntVar(&courseAddDuration, "duration", 0, "duration in hours")
	_ = trainingAddCourseCmd.MarkFlagRequired("title")

	trainingProgressCmd.Flags().IntVar(&progressPercent, "percent", 0, "completion percentage, 0-100 (required)")
	_ = trainingProgressCmd.MarkFlagRequired("percent")

	trainingEnrollmentsCmd.Flags().StringVar(&enrollmentsUser, "user", "", "user ID (default: yourself; others require manager/hr)")

	trainingCmd.AddCommand(trainingAddCourseCmd, trainingCoursesCmd, trainingEnrollCmd, trainingProgressCmd, trainingEnrollmentsCmd)
	rootCmd.AddCommand(trainingCmd)
}
