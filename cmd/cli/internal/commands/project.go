package commands

import (
	"context"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/adgenlab/adgen/internal/api"
)

// ProjectCmd manages ad campaign projects.
type ProjectCmd struct {
	List   ProjectListCmd   `cmd:"" help:"List projects"`
	Get    ProjectGetCmd    `cmd:"" help:"Show a project and its contents"`
	Create ProjectCreateCmd `cmd:"" help:"Create a project under a store"`
	Update ProjectUpdateCmd `cmd:"" help:"Update a project"`
	Delete ProjectDeleteCmd `cmd:"" help:"Delete a project and its contents"`
}

type ProjectListCmd struct{}

func (c *ProjectListCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		fmt.Println()
		fmt.Println("To create one:")
		fmt.Println("  adgen-cli project create --store-id <id> --title <title>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTORE\tTITLE\tSTATUS\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			p.ID, p.StoreID, truncate(p.Title, 30), p.Status, formatTime(p.CreatedAt))
	}
	return w.Flush()
}

type ProjectGetCmd struct {
	ID int64 `arg:"" help:"Project ID"`
}

func (c *ProjectGetCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	// The project record and its content list are independent reads;
	// fetch them concurrently.
	var (
		wg       sync.WaitGroup
		project  *api.Project
		contents []api.Content
		projErr  error
		contErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		project, projErr = client.GetProject(ctx, c.ID)
	}()
	go func() {
		defer wg.Done()
		contents, contErr = client.ListContents(ctx, c.ID)
	}()
	wg.Wait()

	if projErr != nil {
		return fmt.Errorf("failed to get project: %w", projErr)
	}
	if contErr != nil {
		return fmt.Errorf("failed to list contents: %w", contErr)
	}

	fmt.Printf("Project %d: %s\n", project.ID, project.Title)
	fmt.Printf("Store: %d  Status: %s  Created: %s\n", project.StoreID, project.Status, formatTime(project.CreatedAt))
	if project.Description != "" {
		fmt.Printf("Description: %s\n", project.Description)
	}
	fmt.Println()

	if len(contents) == 0 {
		fmt.Println("No contents generated yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSUCCESS\tAD COPY")
	for _, item := range contents {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", item.ID, item.Type, item.IsSuccess, truncate(item.AdCopy, 50))
	}
	return w.Flush()
}

type ProjectCreateCmd struct {
	StoreID     int64  `help:"Store the project belongs to" required:""`
	Title       string `help:"Project title" required:""`
	Description string `help:"Optional description"`
}

func (c *ProjectCreateCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	created, err := client.CreateProject(ctx, api.ProjectRequest{
		StoreID:     c.StoreID,
		Title:       c.Title,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Created project %d (%s)\n", created.ID, created.Title)
	return nil
}

type ProjectUpdateCmd struct {
	ID          int64  `arg:"" help:"Project ID"`
	StoreID     int64  `help:"Store the project belongs to" required:""`
	Title       string `help:"Project title" required:""`
	Description string `help:"Optional description"`
	Status      string `help:"Project status (draft, completed, archived)" default:""`
}

func (c *ProjectUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	updated, err := client.UpdateProject(ctx, c.ID, api.ProjectRequest{
		StoreID:     c.StoreID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("Updated project %d (%s)\n", updated.ID, updated.Title)
	return nil
}

type ProjectDeleteCmd struct {
	ID int64 `arg:"" help:"Project ID"`
}

func (c *ProjectDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	if err := client.DeleteProject(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("Deleted project %d\n", c.ID)
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
