package categories

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/validation"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a new category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete an empty category."`
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateCategoryName(c.Name); err != nil {
		return err
	}
	if _, err := cli.FindCategoryByName(ctx.Store, c.Name); err == nil {
		return fmt.Errorf("category %q already exists", c.Name)
	}

	category := models.Category{
		ID:        uuid.New().String(),
		Name:      c.Name,
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddCategory(category); err != nil {
		return err
	}
	fmt.Printf("Added category: %s\n", category.Name)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, h := range habits {
		counts[h.CategoryID]++
	}

	for _, cat := range categories {
		fmt.Printf("%s (%d habits)\n", cat.Name, counts[cat.ID])
	}
	return nil
}

type CategoryRenameCmd struct {
	Name    string `arg:"" help:"Current category name."`
	NewName string `arg:"" help:"New category name."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateCategoryName(c.NewName); err != nil {
		return err
	}
	category, err := cli.FindCategoryByName(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.RenameCategory(category.ID, c.NewName); err != nil {
		return err
	}
	fmt.Printf("Renamed category %q to %q\n", c.Name, c.NewName)
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	category, err := cli.FindCategoryByName(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteCategory(category.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category: %s\n", category.Name)
	return nil
}
