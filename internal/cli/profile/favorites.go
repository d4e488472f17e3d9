package profile

import (
	"fmt"
	"slices"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
)

type FavoriteToggleCmd struct {
	Kind string `arg:"" enum:"exercise,meal,quote" help:"exercise, meal or quote."`
	ID   string `arg:"" help:"Catalog id of the item."`
}

func (c *FavoriteToggleCmd) Run(ctx *cli.Context) error {
	kind := models.FavoriteKind(c.Kind)
	name := c.ID
	switch kind {
	case models.FavoriteExercise:
		ex, ok := ctx.Catalog.Exercise(c.ID)
		if !ok {
			return fmt.Errorf("exercise %q: %w", c.ID, errors.ErrNotFound)
		}
		name = ex.Name.Resolve(ctx.Locale())
	case models.FavoriteMeal:
		meal, ok := ctx.Catalog.Meal(c.ID)
		if !ok {
			return fmt.Errorf("meal %q: %w", c.ID, errors.ErrNotFound)
		}
		name = meal.Name.Resolve(ctx.Locale())
	}

	ctx.Dispatch(state.ToggleFavorite{FavKind: kind, ID: c.ID})
	if slices.Contains(ctx.State().GetState().Favorites.List(kind), c.ID) {
		fmt.Printf("★ Added %s to favorite %ss\n", name, kind)
	} else {
		fmt.Printf("☆ Removed %s from favorite %ss\n", name, kind)
	}
	return nil
}

type FavoriteListCmd struct{}

func (c *FavoriteListCmd) Run(ctx *cli.Context) error {
	fav := ctx.State().GetState().Favorites
	locale := ctx.Locale()

	printList := func(title string, ids []string, label func(string) string) {
		fmt.Printf("%s (%d)\n", title, len(ids))
		for _, id := range ids {
			fmt.Printf("  ★ %s\n", label(id))
		}
	}
	printList("Exercises", fav.Exercises, func(id string) string {
		if ex, ok := ctx.Catalog.Exercise(id); ok {
			return ex.Name.Resolve(locale)
		}
		return id
	})
	printList("Meals", fav.Meals, func(id string) string {
		if m, ok := ctx.Catalog.Meal(id); ok {
			return m.Name.Resolve(locale)
		}
		return id
	})
	printList("Quotes", fav.Quotes, func(id string) string { return id })
	return nil
}
