package catalog

import (
	"fmt"

	"github.com/julianstephens/vitalit/internal/models"
)

// Meal is a recipe from the meal catalog.
type Meal struct {
	ID           string          `yaml:"id" validate:"required"`
	Name         models.Text     `yaml:"name"`
	Description  models.Text     `yaml:"description"`
	Category     models.MealType `yaml:"category" validate:"oneof=breakfast lunch dinner snack"`
	Calories     int             `yaml:"calories" validate:"gte=0"`
	Protein      float64         `yaml:"protein" validate:"gte=0"`
	Carbs        float64         `yaml:"carbs" validate:"gte=0"`
	Fats         float64         `yaml:"fats" validate:"gte=0"`
	CookingTime  string          `yaml:"cookingTime"`
	Servings     int             `yaml:"servings" validate:"gte=0"`
	Difficulty   string          `yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Ingredients  models.TextList `yaml:"ingredients"`
	Instructions models.TextList `yaml:"instructions"`
	AccessPlans  []int           `yaml:"accessPlans"`
}

// Exercise is a workout from the exercise catalog.
type Exercise struct {
	ID          string      `yaml:"id" validate:"required"`
	Name        models.Text `yaml:"name"`
	Category    string      `yaml:"category" validate:"oneof=Light Moderate Advanced"`
	Duration    string      `yaml:"duration"`
	Reps        string      `yaml:"reps"`
	Rest        string      `yaml:"rest"`
	Description models.Text `yaml:"description"`
	AccessPlans []int       `yaml:"accessPlans"`
}

// Lesson is a single unit of a course module.
type Lesson struct {
	ID          string      `yaml:"id" validate:"required"`
	Title       models.Text `yaml:"title"`
	Type        string      `yaml:"type" validate:"oneof=video text"`
	Duration    string      `yaml:"duration"`
	VideoURL    string      `yaml:"videoUrl" validate:"omitempty,url"`
	Description models.Text `yaml:"description"`
	Content     models.Text `yaml:"content"`
}

// Module groups the lessons of a course.
type Module struct {
	ID      string      `yaml:"id" validate:"required"`
	Title   models.Text `yaml:"title"`
	Lessons []Lesson    `yaml:"lessons" validate:"min=1,dive"`
}

// Course is a gated educational course.
type Course struct {
	ID          string      `yaml:"id" validate:"required"`
	Title       models.Text `yaml:"title"`
	Description models.Text `yaml:"description"`
	AccessPlans []int       `yaml:"accessPlans"`
	Modules     []Module    `yaml:"modules" validate:"min=1,dive"`
}

// LessonRef locates a lesson inside its course.
type LessonRef struct {
	ModuleID string
	Lesson   Lesson
}

// TotalLessons counts lessons across every module.
func (c Course) TotalLessons() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// Lessons returns every lesson in reading order.
func (c Course) Lessons() []LessonRef {
	out := make([]LessonRef, 0, c.TotalLessons())
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			out = append(out, LessonRef{ModuleID: m.ID, Lesson: l})
		}
	}
	return out
}

// FindLesson returns the lesson with id and the module holding it.
func (c Course) FindLesson(id string) (LessonRef, bool) {
	for _, ref := range c.Lessons() {
		if ref.Lesson.ID == id {
			return ref, true
		}
	}
	return LessonRef{}, false
}

// NextLesson returns the lesson after id in reading order.
func (c Course) NextLesson(id string) (LessonRef, bool) {
	lessons := c.Lessons()
	for i, ref := range lessons {
		if ref.Lesson.ID == id && i+1 < len(lessons) {
			return lessons[i+1], true
		}
	}
	return LessonRef{}, false
}

// First returns the opening lesson of the course.
func (c Course) First() (LessonRef, bool) {
	lessons := c.Lessons()
	if len(lessons) == 0 {
		return LessonRef{}, false
	}
	return lessons[0], true
}

func (c Course) check() error {
	seen := make(map[string]bool)
	for _, ref := range c.Lessons() {
		if seen[ref.Lesson.ID] {
			return fmt.Errorf("course %q lists lesson %q twice", c.ID, ref.Lesson.ID)
		}
		seen[ref.Lesson.ID] = true
	}
	return nil
}

// BadgeDefinition is the static description of an achievement.
type BadgeDefinition struct {
	ID          string      `yaml:"id" validate:"required"`
	Name        models.Text `yaml:"name"`
	Description models.Text `yaml:"description"`
	Icon        string      `yaml:"icon"`
	Category    string      `yaml:"category" validate:"oneof=milestone consistency challenge activity nutrition"`
	Requirement models.Text `yaml:"requirement"`
}
