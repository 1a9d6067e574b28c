package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/adgenlab/adgen/internal/api"
)

// StoreCmd manages stores (brand profiles).
type StoreCmd struct {
	List   StoreListCmd   `cmd:"" help:"List your stores"`
	Create StoreCreateCmd `cmd:"" help:"Create a store"`
	Update StoreUpdateCmd `cmd:"" help:"Update a store"`
	Delete StoreDeleteCmd `cmd:"" help:"Delete a store and its projects"`
}

type StoreListCmd struct{}

func (c *StoreListCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	stores, err := client.ListStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}

	if len(stores) == 0 {
		fmt.Println("No stores found.")
		fmt.Println()
		fmt.Println("To create one:")
		fmt.Println("  adgen-cli store create --brand-name <name> --brand-tone <tone>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tTONE\tDESCRIPTION")
	for _, s := range stores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.BrandName, s.BrandTone, truncate(s.Description, 40))
	}
	return w.Flush()
}

type StoreCreateCmd struct {
	BrandName   string `help:"Brand name" required:""`
	BrandTone   string `help:"Brand tone, e.g. luxurious, friendly, professional" required:""`
	Description string `help:"Optional description"`
}

func (c *StoreCreateCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	created, err := client.CreateStore(ctx, api.StoreRequest{
		BrandName:   c.BrandName,
		BrandTone:   c.BrandTone,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	fmt.Printf("Created store %d (%s)\n", created.ID, created.BrandName)
	return nil
}

type StoreUpdateCmd struct {
	ID          int64  `arg:"" help:"Store ID"`
	BrandName   string `help:"Brand name" required:""`
	BrandTone   string `help:"Brand tone" required:""`
	Description string `help:"Optional description"`
}

func (c *StoreUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	updated, err := client.UpdateStore(ctx, c.ID, api.StoreRequest{
		BrandName:   c.BrandName,
		BrandTone:   c.BrandTone,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	fmt.Printf("Updated store %d (%s)\n", updated.ID, updated.BrandName)
	return nil
}

type StoreDeleteCmd struct {
	ID int64 `arg:"" help:"Store ID"`
}

func (c *StoreDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	if err := client.DeleteStore(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	fmt.Printf("Deleted store %d\n", c.ID)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
