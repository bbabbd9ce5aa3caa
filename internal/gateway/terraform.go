package gateway

// TerraformCommand is the closed set of terraform invocations the gateway
// will run. Each variant carries only the extra arguments it permits, and
// each injects its own non-interactive and no-color flags so no invocation
// can block the pipeline on a prompt.
type TerraformCommand interface {
	argv() []string
	name() string
}

// InitCmd runs `terraform init`.
type InitCmd struct{}

func (InitCmd) name() string { return "init" }
func (InitCmd) argv() []string {
	return []string{"init", "-input=false"}
}

// ValidateCmd runs `terraform validate`.
type ValidateCmd struct{}

func (ValidateCmd) name() string { return "validate" }
func (ValidateCmd) argv() []string {
	return []string{"validate", "-no-color"}
}

// PlanCmd runs `terraform plan`, optionally saving the plan to OutFile.
type PlanCmd struct {
	OutFile string
}

func (PlanCmd) name() string { return "plan" }
func (c PlanCmd) argv() []string {
	args := []string{"plan", "-input=false", "-no-color"}
	if c.OutFile != "" {
		args = append(args, "-out", c.OutFile)
	}
	return args
}

// ShowCmd renders a saved plan (or current state when PlanFile is empty).
type ShowCmd struct {
	// JSON selects machine-readable output.
	JSON bool
	// PlanFile is the saved plan to render.
	PlanFile string
}

func (ShowCmd) name() string { return "show" }
func (c ShowCmd) argv() []string {
	args := []string{"show", "-no-color"}
	if c.JSON {
		args = append(args, "-json")
	}
	if c.PlanFile != "" {
		args = append(args, c.PlanFile)
	}
	return args
}

// VersionCmd runs `terraform version`.
type VersionCmd struct{}

func (VersionCmd) name() string { return "version" }
func (VersionCmd) argv() []string {
	return []string{"version"}
}
