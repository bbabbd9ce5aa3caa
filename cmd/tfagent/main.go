package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"tfagent/internal/config"
	"tfagent/internal/gateway"
	"tfagent/internal/llm"
	"tfagent/internal/pipeline"
	"tfagent/internal/slug"
)

func main() {
	mode := flag.String("mode", "review", "review or create")
	workdir := flag.String("workdir", "", "path to the Terraform project (defaults to repo root)")
	outDir := flag.String("out-dir", "", "output directory for create mode")
	specText := flag.String("spec", "", "inline text spec for create mode")
	specFile := flag.String("spec-file", "", "path to a text spec file for create mode")
	model := flag.String("model", "", "Gemini model id (overrides GEMINI_MODEL)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if *workdir != "" {
		cfg.Workdir = *workdir
	}
	if *model != "" {
		cfg.Model = *model
	}

	ctx := context.Background()

	// The model credential is validated before any tool runs.
	cli, err := llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Fatal(err)
	}
	defer cli.Close()

	gate := gateway.New(cfg)

	switch *mode {
	case "review":
		rp := pipeline.Review{LLM: cli, Gate: gate}
		if _, err := rp.Run(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Report written to report.md in workdir.")
	case "create":
		text := *specText
		if text == "" && *specFile != "" {
			b, err := os.ReadFile(*specFile)
			if err != nil {
				log.Fatalf("read spec file: %v", err)
			}
			text = string(b)
		}
		if text == "" {
			log.Fatal("provide -spec or -spec-file for create mode")
		}
		dest := *outDir
		if dest == "" {
			dest = slug.Allocate(cfg.Workdir, text)
		}
		cp := pipeline.Create{LLM: cli}
		written, msg, err := cp.Run(ctx, text, dest)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(msg)
		for _, p := range written {
			fmt.Println(p)
		}
	default:
		log.Fatalf("unknown mode %q (want review or create)", *mode)
	}
}
