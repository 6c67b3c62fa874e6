package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"toolchainctl/internal/catalog"
	"toolchainctl/internal/config"
	"toolchainctl/internal/paths"
	"toolchainctl/internal/toolchain"
)

var doctorOutputJSON bool

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and registered toolchains",
		RunE:  runDoctor,
	}
	cmd.Flags().BoolVar(&doctorOutputJSON, "json", false, "Output JSON")
	return cmd
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, _, cfgErr := loadConfig()

	var checks []healthCheck
	checks = append(checks, checkConfig(cfg, cfgErr))
	if cfgErr != nil {
		return writeDoctorResult(cmd, "", checks)
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		checks = append(checks, healthCheck{Name: "Environment", Status: "error", Summary: err.Error()})
		return writeDoctorResult(cmd, "", checks)
	}
	defer env.Close()

	checks = append(checks, checkRoot(env.paths))
	checks = append(checks, checkCatalog(env.cfg))
	checks = append(checks, checkToolchains(cmd.Context(), env.registry))

	return writeDoctorResult(cmd, env.paths.ToolchainDir, checks)
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errors int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := fmt.Sprintf("%d allowed name patterns, %d discover patterns", len(cfg.Register.AllowedNames), len(cfg.Discover.Patterns))
	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkRoot(pp paths.AppPaths) healthCheck {
	exists, err := paths.DirExists(pp.ToolchainDir)
	if err != nil {
		return healthCheck{Name: "Root", Status: "error", Summary: err.Error()}
	}
	if !exists {
		return healthCheck{Name: "Root", Status: "warning", Summary: "not created yet: " + pp.ToolchainDir}
	}
	return healthCheck{Name: "Root", Status: "ok", Summary: pp.ToolchainDir}
}

func checkCatalog(cfg config.Config) healthCheck {
	if cfg.Catalog.Disabled {
		return healthCheck{Name: "Catalog", Status: "ok", Summary: "disabled"}
	}
	idx, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return healthCheck{Name: "Catalog", Status: "error", Summary: err.Error()}
	}
	keys, err := idx.Obtainable(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return healthCheck{Name: "Catalog", Status: "error", Summary: err.Error()}
	}
	return healthCheck{Name: "Catalog", Status: "ok", Summary: fmt.Sprintf("%d obtainable for %s/%s", len(keys), runtime.GOOS, runtime.GOARCH)}
}

// checkToolchains re-inspects every installed toolchain and flags the ones
// whose interpreter is gone or now reports a different version.
func checkToolchains(ctx context.Context, reg *toolchain.Registry) healthCheck {
	entries, err := reg.List(false)
	if err != nil {
		return healthCheck{Name: "Toolchains", Status: "error", Summary: err.Error()}
	}
	if len(entries) == 0 {
		return healthCheck{Name: "Toolchains", Status: "ok", Summary: "none registered"}
	}

	var broken []string
	for _, e := range entries {
		bin, err := reg.Interpreter(e.Key)
		if err != nil {
			broken = append(broken, e.Key.String())
			continue
		}
		info, err := reg.Inspector.Inspect(ctx, bin)
		if err != nil || info.Version != e.Key.Version {
			broken = append(broken, e.Key.String())
		}
	}

	if len(broken) == 0 {
		return healthCheck{Name: "Toolchains", Status: "ok", Summary: fmt.Sprintf("%d registered", len(entries))}
	}
	return healthCheck{
		Name:    "Toolchains",
		Status:  "warning",
		Summary: fmt.Sprintf("%d of %d stale: %s", len(broken), len(entries), joinComma(broken)),
	}
}

func writeDoctorResult(cmd *cobra.Command, root string, checks []healthCheck) error {
	if doctorOutputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	bold := r.NewStyle().Bold(true).Inline(true)
	green := r.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := r.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := r.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	fmt.Fprintln(out, bold.Render("TOOLCHAIN HEALTH:")+" "+root)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}
