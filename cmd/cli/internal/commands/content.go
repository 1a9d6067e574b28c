package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/adgenlab/adgen/internal/api"
)

// ContentCmd manages generated ad contents.
type ContentCmd struct {
	Generate ContentGenerateCmd `cmd:"" help:"Generate an ad image and copy"`
	Upload   ContentUploadCmd   `cmd:"" help:"Upload a source image"`
	List     ContentListCmd     `cmd:"" help:"List contents for a project"`
	Get      ContentGetCmd      `cmd:"" help:"Show a content record"`
	Delete   ContentDeleteCmd   `cmd:"" help:"Delete a content record"`
	Image    ContentImageCmd    `cmd:"" help:"Download a content's result image"`
}

// GenerateConfig mirrors the generate request for YAML/JSON config files.
type GenerateConfig struct {
	AdDescription  string   `yaml:"adDescription" json:"adDescription"`
	ImagePrompt    string   `yaml:"imagePrompt" json:"imagePrompt"`
	TextInImage    string   `yaml:"textInImage" json:"textInImage"`
	NegativePrompt string   `yaml:"negativePrompt" json:"negativePrompt"`
	Seed           *int64   `yaml:"seed" json:"seed"`
	Steps          *int     `yaml:"steps" json:"steps"`
	CFG            *float64 `yaml:"cfg" json:"cfg"`
	Width          *int     `yaml:"width" json:"width"`
	Height         *int     `yaml:"height" json:"height"`
	SamplerName    string   `yaml:"samplerName" json:"samplerName"`
	Scheduler      string   `yaml:"scheduler" json:"scheduler"`
}

type ContentGenerateCmd struct {
	ProjectID      int64    `help:"Project to attach the content to" required:""`
	AdDescription  string   `help:"What is being advertised"`
	ImagePrompt    string   `help:"Description of the image to generate"`
	TextInImage    string   `help:"Text to render inside the image"`
	NegativePrompt string   `help:"Negative prompt"`
	Seed           *int64   `help:"Seed for reproducible generation"`
	Steps          *int     `help:"Generation steps"`
	CFG            *float64 `help:"CFG scale"`
	Width          *int     `help:"Image width"`
	Height         *int     `help:"Image height"`
	SamplerName    string   `help:"Sampler name" default:"euler"`
	Scheduler      string   `help:"Scheduler name" default:"simple"`
	Config         string   `help:"YAML/JSON generation config file"`
	Output         string   `help:"Download the result image to this file"`
}

func (c *ContentGenerateCmd) Run(ctx context.Context, globals *Globals) error {
	if c.Config != "" {
		if err := c.loadConfigFile(); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if c.AdDescription == "" || c.ImagePrompt == "" {
		return fmt.Errorf("ad description and image prompt are required (use flags or --config file)")
	}

	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	fmt.Println("Generating, this can take a while...")

	resp, err := client.GenerateContent(ctx, api.GenerateRequest{
		AdDescription:  c.AdDescription,
		ImagePrompt:    c.ImagePrompt,
		TextInImage:    c.TextInImage,
		NegativePrompt: c.NegativePrompt,
		Seed:           c.Seed,
		Steps:          c.Steps,
		CFG:            c.CFG,
		Width:          c.Width,
		Height:         c.Height,
		SamplerName:    c.SamplerName,
		Scheduler:      c.Scheduler,
		ProjectID:      c.ProjectID,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("Generated content %d in %ds\n", resp.ContentID, resp.GenerationTime)
	if resp.OptimizedPrompt != "" {
		fmt.Printf("Optimized prompt: %s\n", resp.OptimizedPrompt)
	}
	if resp.AdCopy != "" {
		fmt.Printf("Ad copy: %s\n", resp.AdCopy)
	}

	if c.Output != "" && resp.ContentID != 0 {
		if err := downloadImage(ctx, client, resp.ContentID, c.Output); err != nil {
			return err
		}
		fmt.Printf("Saved image to %s\n", c.Output)
	}

	return nil
}

// loadConfigFile merges a YAML/JSON config into the command flags; the file
// takes precedence over flags.
func (c *ContentGenerateCmd) loadConfigFile() error {
	data, err := os.ReadFile(c.Config)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg GenerateConfig

	// Determine file format by extension
	if strings.HasSuffix(strings.ToLower(c.Config), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if cfg.AdDescription != "" {
		c.AdDescription = cfg.AdDescription
	}
	if cfg.ImagePrompt != "" {
		c.ImagePrompt = cfg.ImagePrompt
	}
	if cfg.TextInImage != "" {
		c.TextInImage = cfg.TextInImage
	}
	if cfg.NegativePrompt != "" {
		c.NegativePrompt = cfg.NegativePrompt
	}
	if cfg.Seed != nil {
		c.Seed = cfg.Seed
	}
	if cfg.Steps != nil {
		c.Steps = cfg.Steps
	}
	if cfg.CFG != nil {
		c.CFG = cfg.CFG
	}
	if cfg.Width != nil {
		c.Width = cfg.Width
	}
	if cfg.Height != nil {
		c.Height = cfg.Height
	}
	if cfg.SamplerName != "" {
		c.SamplerName = cfg.SamplerName
	}
	if cfg.Scheduler != "" {
		c.Scheduler = cfg.Scheduler
	}

	return nil
}

type ContentUploadCmd struct {
	File string `arg:"" help:"Image file to upload" type:"existingfile"`
}

func (c *ContentUploadCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	resp, err := client.UploadContent(ctx, c.File, f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("Uploaded %s", c.File)
	if resp.FilePath != "" {
		fmt.Printf(" -> %s", resp.FilePath)
	}
	fmt.Println()
	return nil
}

type ContentListCmd struct {
	ProjectID int64 `help:"Project to list contents for" required:""`
}

func (c *ContentListCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	contents, err := client.ListContents(ctx, c.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list contents: %w", err)
	}

	if len(contents) == 0 {
		fmt.Println("No contents found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSUCCESS\tCREATED\tAD COPY")
	for _, item := range contents {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n",
			item.ID, item.Type, item.IsSuccess, formatTime(item.CreatedAt), truncate(item.AdCopy, 40))
	}
	return w.Flush()
}

type ContentGetCmd struct {
	ID int64 `arg:"" help:"Content ID"`
}

func (c *ContentGetCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	content, err := client.GetContent(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	fmt.Printf("Content %d (project %d, %s)\n", content.ID, content.ProjectID, content.Type)
	fmt.Printf("Success: %t  Created: %s\n", content.IsSuccess, formatTime(content.CreatedAt))
	if content.UserPrompt != "" {
		fmt.Printf("Prompt: %s\n", content.UserPrompt)
	}
	if content.OptimizedPrompt != "" {
		fmt.Printf("Optimized prompt: %s\n", content.OptimizedPrompt)
	}
	if content.AdCopy != "" {
		fmt.Printf("Ad copy: %s\n", content.AdCopy)
	}
	if content.ErrorMessage != "" {
		fmt.Printf("Error: %s\n", content.ErrorMessage)
	}
	return nil
}

type ContentDeleteCmd struct {
	ID int64 `arg:"" help:"Content ID"`
}

func (c *ContentDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	if err := client.DeleteContent(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	fmt.Printf("Deleted content %d\n", c.ID)
	return nil
}

type ContentImageCmd struct {
	ID     int64  `arg:"" help:"Content ID"`
	Output string `help:"File to write the image to" required:""`
}

func (c *ContentImageCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := requireSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	if err := downloadImage(ctx, client, c.ID, c.Output); err != nil {
		return err
	}

	fmt.Printf("Saved image to %s\n", c.Output)
	return nil
}

// downloadImage writes the result image to a temp file first so a failed
// download never leaves a truncated file at the destination.
func downloadImage(ctx context.Context, client *api.Client, contentID int64, output string) error {
	tempPath := output + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tempPath, err)
	}

	_, err = client.DownloadContentImage(ctx, contentID, f)
	closeErr := f.Close()
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to download image: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write image: %w", closeErr)
	}

	if err := os.Rename(tempPath, output); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
