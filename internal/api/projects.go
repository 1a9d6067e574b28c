package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListProjects returns all projects visible to the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project under a store.
func (c *Client) CreateProject(ctx context.Context, req ProjectRequest) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects/", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces the project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id int64, req ProjectRequest) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project and its contents.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}
