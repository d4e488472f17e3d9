package courses

import (
	"fmt"
	"slices"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/state"
)

// lookup finds course id and checks the active plan covers it.
func lookup(ctx *cli.Context, id string) (catalog.Course, error) {
	c, ok := ctx.Catalog.Course(id)
	if !ok {
		return c, fmt.Errorf("course %q: %w", id, errors.ErrNotFound)
	}
	return c, ctx.RequireAccess(c.AccessPlans)
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	u := ctx.State().GetState()
	locale := ctx.Locale()
	for _, course := range ctx.Catalog.Courses {
		status := fmt.Sprintf("%d lessons", course.TotalLessons())
		if cp, ok := u.Course(course.ID); ok {
			status = fmt.Sprintf("%d/%d lessons done", len(cp.CompletedLessons), course.TotalLessons())
		} else if !ctx.CanAccess(course.AccessPlans) {
			status = "🔒 locked"
		}
		fmt.Printf("%-18s %-32s %s\n", course.ID, course.Title.Resolve(locale), status)
	}
	return nil
}

type StartCmd struct {
	CourseID string `arg:"" help:"Course id."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	course, err := lookup(ctx, c.CourseID)
	if err != nil {
		return err
	}
	if !ctx.Dispatch(state.StartCourse{CourseID: c.CourseID}) {
		fmt.Println("Course already started.")
	} else {
		fmt.Printf("✓ Started %s\n", course.Title.Resolve(ctx.Locale()))
	}
	return (&NextCmd{CourseID: c.CourseID}).Run(ctx)
}

type CompleteCmd struct {
	CourseID string `arg:"" help:"Course id."`
	LessonID string `arg:"" optional:"" help:"Lesson id (defaults to the current lesson)."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	course, err := lookup(ctx, c.CourseID)
	if err != nil {
		return err
	}
	lessonID := c.LessonID
	if lessonID == "" {
		cp, ok := ctx.State().GetState().Course(c.CourseID)
		if !ok {
			return fmt.Errorf("course %q has not been started", c.CourseID)
		}
		lessonID = cp.CurrentLesson
	}
	ref, ok := course.FindLesson(lessonID)
	if !ok {
		return fmt.Errorf("lesson %q in course %q: %w", lessonID, c.CourseID, errors.ErrNotFound)
	}

	if !ctx.Dispatch(state.CompleteLesson{CourseID: c.CourseID, LessonID: lessonID}) {
		fmt.Println("Lesson was already complete.")
		return nil
	}
	cp, _ := ctx.State().GetState().Course(c.CourseID)
	fmt.Printf("✓ %s (%d/%d)\n", ref.Lesson.Title.Resolve(ctx.Locale()), len(cp.CompletedLessons), course.TotalLessons())
	if len(cp.CompletedLessons) == course.TotalLessons() {
		fmt.Println("🎓 Course complete!")
	}
	return nil
}

// NextCmd shows the current lesson, or moves to the next one with --advance.
type NextCmd struct {
	CourseID string `arg:"" help:"Course id."`
	Advance  bool   `help:"Move past the current lesson without completing it."`
}

func (c *NextCmd) Run(ctx *cli.Context) error {
	course, err := lookup(ctx, c.CourseID)
	if err != nil {
		return err
	}
	cp, ok := ctx.State().GetState().Course(c.CourseID)
	if !ok {
		return fmt.Errorf("course %q has not been started; run 'vitalit course start %s'", c.CourseID, c.CourseID)
	}
	if c.Advance {
		nxt, ok := course.NextLesson(cp.CurrentLesson)
		if !ok {
			fmt.Println("This is the last lesson.")
			return nil
		}
		ctx.Dispatch(state.SetCurrentLesson{CourseID: c.CourseID, LessonID: nxt.Lesson.ID})
		cp, _ = ctx.State().GetState().Course(c.CourseID)
	}

	ref, ok := course.FindLesson(cp.CurrentLesson)
	if !ok {
		return fmt.Errorf("current lesson %q no longer exists", cp.CurrentLesson)
	}
	locale := ctx.Locale()
	done := ""
	if slices.Contains(cp.CompletedLessons, ref.Lesson.ID) {
		done = " ✓"
	}
	fmt.Printf("\n📘 %s%s\n", ref.Lesson.Title.Resolve(locale), done)
	fmt.Printf("   %s lesson, %s  [%s]\n", ref.Lesson.Type, ref.Lesson.Duration, ref.Lesson.ID)
	if d := ref.Lesson.Description.Resolve(locale); d != "" {
		fmt.Printf("   %s\n", d)
	}
	if ref.Lesson.VideoURL != "" {
		fmt.Printf("   ▶ %s\n", ref.Lesson.VideoURL)
	}
	if body := ref.Lesson.Content.Resolve(locale); body != "" {
		fmt.Printf("\n%s\n", body)
	}
	return nil
}
