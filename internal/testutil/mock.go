// Package testutil provides testing utilities for the scopa project.
package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/plan"
)

// ScriptedClient replays canned model outputs in order and records every
// request it receives. It stands in for the Gemini client in session tests.
type ScriptedClient struct {
	Replies     []ai.Content // consumed by Generate, one per call
	GenerateErr error        // returned by Generate when set

	Plans   []*plan.Plan // consumed by GeneratePlan, one per call
	PlanErr error        // returned by GeneratePlan when set

	Requests []*ai.GenerateRequest // every Generate request, in order
	Ideas    []string              // every GeneratePlan idea, in order
}

// Generate returns the next scripted reply.
func (c *ScriptedClient) Generate(_ context.Context, req *ai.GenerateRequest) (*ai.Content, error) {
	c.Requests = append(c.Requests, req)
	if c.GenerateErr != nil {
		return nil, c.GenerateErr
	}
	if len(c.Replies) == 0 {
		return nil, errors.New("scripted client: no replies left")
	}
	reply := c.Replies[0]
	c.Replies = c.Replies[1:]
	return &reply, nil
}

// GeneratePlan returns the next scripted plan.
func (c *ScriptedClient) GeneratePlan(_ context.Context, _ string, idea string) (*plan.Plan, error) {
	c.Ideas = append(c.Ideas, idea)
	if c.PlanErr != nil {
		return nil, c.PlanErr
	}
	if len(c.Plans) == 0 {
		return nil, errors.New("scripted client: no plans left")
	}
	p := c.Plans[0]
	c.Plans = c.Plans[1:]
	return p, nil
}

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}
