package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tfagent/internal/llm"
)

func TestCreateMaterializesManifest(t *testing.T) {
	base := t.TempDir()
	outDir := filepath.Join(base, "out")
	cli := &llm.FakeClient{Response: "Here is your scaffold:\n```json\n" +
		`{"files":[` +
		`{"path":"main.tf","content":"resource \"aws_s3_bucket\" \"b\" {}"},` +
		`{"path":"modules/vpc/main.tf","content":"module content"},` +
		`{"path":"","content":"dropped"},` +
		`{"path":"../escape.tf","content":"dropped too"}` +
		`]}` + "\n```\nEnjoy!"}

	p := Create{LLM: cli}
	written, msg, err := p.Run(context.Background(), "a secure bucket", outDir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written=%v", written)
	}
	if !strings.Contains(msg, "Wrote 2 files") {
		t.Fatalf("msg=%q", msg)
	}
	b, err := os.ReadFile(filepath.Join(outDir, "main.tf"))
	if err != nil {
		t.Fatalf("read main.tf: %v", err)
	}
	if !strings.Contains(string(b), "aws_s3_bucket") {
		t.Fatalf("content=%q", b)
	}
	if _, err := os.Stat(filepath.Join(outDir, "modules", "vpc", "main.tf")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "escape.tf")); !os.IsNotExist(err) {
		t.Fatal("escaping path must not be written")
	}
	for _, p := range written {
		if !filepath.IsAbs(p) {
			t.Fatalf("written path %q must be absolute", p)
		}
	}
}

func TestCreateNoJSONWritesNothing(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	cli := &llm.FakeClient{Response: "Sorry, I cannot help with that."}

	p := Create{LLM: cli}
	written, _, err := p.Run(context.Background(), "spec", outDir)
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("err=%v want ErrNoJSON", err)
	}
	if len(written) != 0 {
		t.Fatalf("written=%v", written)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("output directory must not be created")
	}
}

func TestCreateMalformedManifestWritesNothing(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	cli := &llm.FakeClient{Response: `{"files": 3}`}

	p := Create{LLM: cli}
	written, _, err := p.Run(context.Background(), "spec", outDir)
	if err == nil || errors.Is(err, ErrNoJSON) {
		t.Fatalf("err=%v want a parse error", err)
	}
	if !strings.Contains(err.Error(), "parse manifest") {
		t.Fatalf("err=%v", err)
	}
	if len(written) != 0 {
		t.Fatalf("written=%v", written)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("output directory must not be created")
	}
}

func TestCreateSendsSpecToModel(t *testing.T) {
	cli := &llm.FakeClient{Response: `{"files":[]}`}
	p := Create{LLM: cli}

	if _, _, err := p.Run(context.Background(), "three private subnets", filepath.Join(t.TempDir(), "out")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(cli.Calls) != 1 || len(cli.Calls[0]) != 2 {
		t.Fatalf("calls=%v", cli.Calls)
	}
	if !strings.Contains(cli.Calls[0][0], `"files"`) {
		t.Fatalf("system part must request the files manifest: %q", cli.Calls[0][0])
	}
	if !strings.Contains(cli.Calls[0][1], "three private subnets") {
		t.Fatalf("spec part missing: %q", cli.Calls[0][1])
	}
}
