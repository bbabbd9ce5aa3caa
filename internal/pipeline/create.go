package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tfagent/internal/llm"
	"tfagent/internal/safeio"
	"tfagent/internal/util/jsonutil"
)

// ErrNoJSON is returned when the model response contains no balanced JSON
// block. Nothing is written in that case.
var ErrNoJSON = errors.New("pipeline: model did not return JSON")

// createInstructions is the fixed system prompt for scaffold generation.
const createInstructions = `Generate a Terraform scaffold as JSON. Output only JSON with the following shape:
{
  "files": [
    { "path": "main.tf", "content": "hcl content" },
    { "path": "variables.tf", "content": "hcl content" },
    { "path": "outputs.tf", "content": "hcl content" }
  ]
}
Use secure defaults (encryption, least-privilege, tags). Keep content concise and valid.`

// Manifest is the file list the model is asked to return.
type Manifest struct {
	Files []ManifestFile `json:"files"`
}

// ManifestFile is one generated file. Entries with an empty path are
// skipped, as are entries whose path escapes the output directory.
type ManifestFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Create sends a scaffold spec to the model and materializes the returned
// manifest under outDir. The manifest stage is all-or-nothing: a missing
// or malformed JSON block writes no files at all.
type Create struct {
	LLM llm.Client
}

// Run returns the absolute paths written and a human-readable summary.
func (p *Create) Run(ctx context.Context, specText, outDir string) ([]string, string, error) {
	if p.LLM == nil {
		return nil, "", errors.New("pipeline: model client is not configured")
	}

	prompt := "Spec for Terraform scaffold:\n" + specText + "\n\nReturn ONLY the JSON object as specified."
	text, err := p.LLM.GenerateText(ctx, []string{createInstructions, prompt})
	if err != nil {
		return nil, "", fmt.Errorf("pipeline: generate scaffold: %w", err)
	}

	block := jsonutil.FirstBlock(text)
	if block == "" {
		return nil, "", ErrNoJSON
	}
	var manifest Manifest
	if err := jsonutil.Unmarshal([]byte(block), &manifest); err != nil {
		return nil, "", fmt.Errorf("pipeline: parse manifest: %w", err)
	}

	dir, err := safeio.NewDir(outDir)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(dir.Root(), 0o755); err != nil {
		return nil, "", err
	}

	var written []string
	for _, f := range manifest.Files {
		dest, err := dir.Resolve(f.Path)
		if err != nil {
			// Empty or escaping paths are dropped, not fatal.
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, "", err
		}
		if err := os.WriteFile(dest, []byte(f.Content), 0o644); err != nil {
			return written, "", err
		}
		written = append(written, dest)
	}
	return written, fmt.Sprintf("Wrote %d files to %s.", len(written), dir.Root()), nil
}
