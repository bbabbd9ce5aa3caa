package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tfagent/internal/gateway"
	"tfagent/internal/llm"
)

// reviewInstructions is the fixed synthesis prompt prefixed to the
// evidence bundle.
const reviewInstructions = `You are a Terraform PR reviewer. Using the provided files and tool outputs, write a concise, actionable Markdown report with these sections:
1) Summary (top risks, quick wins)
2) Validation/Plan (key changes, errors if any)
3) Security (notable issues, severities, suggestions)
4) Cost (estimated monthly impact, hotspots, savings ideas)
5) Suggested Diffs (minimal changes to improve security/cost/compliance).
Avoid verbosity; prefer bullet points. If a tool failed or is missing, note it briefly and proceed.
Do not include any apply steps.`

const planFile = "tf.plan"

// ToolGate is the slice of the gateway the pipelines use.
type ToolGate interface {
	RunTerraform(ctx context.Context, cmd gateway.TerraformCommand) gateway.Result
	RunSecurityScan(ctx context.Context) gateway.Result
	RunInfracost(ctx context.Context) gateway.Result
	ReadRepoFiles(patterns []string) gateway.Result
	WriteReport(markdown string) gateway.Result
}

// Review gathers evidence from every tool in a fixed order and asks the
// model for a single Markdown report. Individual tool failures are folded
// into the evidence instead of aborting the run; only a missing model
// capability is fatal, and it is checked before any tool executes.
type Review struct {
	LLM  llm.Client
	Gate ToolGate
}

// Run executes the review flow and returns the generated report verbatim.
func (p *Review) Run(ctx context.Context) (string, error) {
	if p.LLM == nil {
		return "", errors.New("pipeline: model client is not configured")
	}

	filesRes := p.Gate.ReadRepoFiles([]string{"*.tf"})

	tfInit := p.Gate.RunTerraform(ctx, gateway.InitCmd{})
	tfValidate := p.Gate.RunTerraform(ctx, gateway.ValidateCmd{})
	p.Gate.RunTerraform(ctx, gateway.PlanCmd{OutFile: planFile})
	tfShow := p.Gate.RunTerraform(ctx, gateway.ShowCmd{JSON: true, PlanFile: planFile})
	showJSON := tfShow.OK
	if !showJSON {
		tfShow = p.Gate.RunTerraform(ctx, gateway.ShowCmd{PlanFile: planFile})
	}

	sec := p.Gate.RunSecurityScan(ctx)
	cost := p.Gate.RunInfracost(ctx)

	parts := []string{reviewInstructions}
	if filesRes.OK {
		for _, rel := range sortedKeys(filesRes.Files) {
			parts = append(parts, fmt.Sprintf("File: %s\n```hcl\n%s\n```", rel, filesRes.Files[rel]))
		}
	} else {
		parts = append(parts, "Could not read files: "+filesRes.Err)
	}
	parts = append(parts, "Terraform init:\n```\n"+tfInit.Text()+"\n```")
	parts = append(parts, "Terraform validate:\n```\n"+tfValidate.Text()+"\n```")
	if showJSON {
		parts = append(parts, "Terraform plan (JSON):\n```json\n"+tfShow.Stdout+"\n```")
	} else {
		parts = append(parts, "Terraform plan (text):\n```\n"+tfShow.Text()+"\n```")
	}
	if sec.OK {
		parts = append(parts, fmt.Sprintf("Security scan (%s):\n```json\n%s\n```", sec.Tool, sec.Stdout))
	} else {
		parts = append(parts, "Security scan unavailable: "+sec.Err)
	}
	if cost.OK {
		parts = append(parts, "Infracost:\n```json\n"+cost.Stdout+"\n```")
	} else {
		parts = append(parts, "Infracost unavailable: "+cost.Err)
	}

	report, err := p.LLM.GenerateText(ctx, parts)
	if err != nil {
		return "", fmt.Errorf("pipeline: generate report: %w", err)
	}

	if res := p.Gate.WriteReport(report); !res.OK {
		return report, fmt.Errorf("pipeline: write report: %s", res.Err)
	}
	return report, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
