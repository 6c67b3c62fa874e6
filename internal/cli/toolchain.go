package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"toolchainctl/internal/toolchain"
	"toolchainctl/internal/tui"
)

var (
	registerName       string
	listDownloadable   bool
	listFormat         string
	discoverRegister   bool
	discoverOutputJSON bool
)

func newToolchainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toolchain",
		Aliases: []string{"tc"},
		Short:   "Register, list and remove interpreter toolchains",
	}

	cmd.AddCommand(newToolchainRegisterCmd())
	cmd.AddCommand(newToolchainListCmd())
	cmd.AddCommand(newToolchainRemoveCmd())
	cmd.AddCommand(newToolchainWhichCmd())
	cmd.AddCommand(newToolchainDiscoverCmd())
	return cmd
}

func newToolchainRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register PATH",
		Short: "Register an interpreter that already exists on this machine",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainRegister,
	}
	cmd.Flags().StringVar(&registerName, "name", "", "Name to register under instead of the implementation name")
	return cmd
}

func newToolchainListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered toolchains",
		Args:  cobra.NoArgs,
		RunE:  runToolchainList,
	}
	cmd.Flags().BoolVar(&listDownloadable, "include-downloadable", false, "Also list toolchains from the catalog")
	cmd.Flags().StringVar(&listFormat, "format", "", "Output format (json, table)")
	return cmd
}

func newToolchainRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a registered or installed toolchain",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainRemove,
	}
}

func newToolchainWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which KEY",
		Short: "Print the interpreter path of an installed toolchain",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolchainWhich,
	}
}

func newToolchainDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover [PATTERN...]",
		Short: "Find interpreters on this machine",
		RunE:  runToolchainDiscover,
	}
	cmd.Flags().BoolVar(&discoverRegister, "register", false, "Register every interpreter found")
	cmd.Flags().BoolVar(&discoverOutputJSON, "json", false, "Output JSON")
	return cmd
}

func runToolchainRegister(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	key, err := env.registry.Register(cmd.Context(), path, registerName, toolchain.AllowNames(env.cfg.Register.AllowedNames))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s\n", path, key)
	return nil
}

type listItem struct {
	Name         string `json:"name"`
	Path         string `json:"path,omitempty"`
	Downloadable bool   `json:"downloadable,omitempty"`
}

func runToolchainList(cmd *cobra.Command, _ []string) error {
	switch listFormat {
	case "", "json", "table":
	default:
		return fmt.Errorf("unknown format %q (expected json or table)", listFormat)
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	entries, err := env.registry.List(listDownloadable)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		items := make([]listItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, listItem{Name: e.Key.String(), Path: e.Path, Downloadable: !e.Installed()})
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "table":
		table := tablewriter.NewWriter(out)
		table.Header("NAME", "STATUS", "PATH")
		for _, e := range entries {
			status := "installed"
			if !e.Installed() {
				status = "downloadable"
			}
			_ = table.Append(e.Key.String(), status, e.Path)
		}
		return table.Render()
	default:
		styles := tui.NewStyles(out)
		for _, e := range entries {
			if e.Installed() {
				fmt.Fprintf(out, "%s %s\n", styles.Status("installed").Render(e.Key.String()), styles.Dim.Render("("+e.Path+")"))
			} else {
				dim := styles.Status("downloadable")
				fmt.Fprintf(out, "%s %s\n", dim.Render(e.Key.String()), dim.Render("(downloadable)"))
			}
		}
	}
	return nil
}

func runToolchainRemove(cmd *cobra.Command, args []string) error {
	key, err := toolchain.ParseKey(args[0])
	if err != nil {
		return err
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	outcome, err := env.registry.Remove(key)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	switch outcome {
	case toolchain.RemovedLink:
		fmt.Fprintf(errOut, "Removed toolchain link %s\n", key)
	case toolchain.RemovedInstallation:
		fmt.Fprintf(errOut, "Removed installed toolchain %s\n", key)
	default:
		fmt.Fprintln(errOut, "Toolchain is not installed")
		if hints := suggestInstalled(env.registry, key); len(hints) > 0 {
			fmt.Fprintf(errOut, "Did you mean: %s\n", joinComma(hints))
		}
	}
	return nil
}

func runToolchainWhich(cmd *cobra.Command, args []string) error {
	key, err := toolchain.ParseKey(args[0])
	if err != nil {
		return err
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	bin, err := env.registry.Interpreter(key)
	if err != nil {
		if hints := suggestInstalled(env.registry, key); len(hints) > 0 {
			return fmt.Errorf("%w (did you mean: %s)", err, joinComma(hints))
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), bin)
	return nil
}

type discoverItem struct {
	Path   string `json:"path"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func runToolchainDiscover(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	patterns := args
	if len(patterns) == 0 {
		for _, p := range env.cfg.Discover.Patterns {
			if doublestar.ValidatePathPattern(p) {
				patterns = append(patterns, p)
			}
		}
	}
	if len(patterns) == 0 {
		patterns = toolchain.DefaultDiscoverPatterns()
	}
	env.logger.Debug("discovering interpreters", "patterns", patterns)

	validate := toolchain.AllowNames(env.cfg.Register.AllowedNames)
	out := cmd.OutOrStdout()

	if tui.DetectMode(out, discoverOutputJSON) == tui.ModeTUI {
		return runDiscoverBoard(cmd, env, patterns, validate)
	}

	candidates, err := toolchain.Discover(cmd.Context(), env.registry.Inspector, patterns)
	if err != nil {
		return err
	}
	items := make([]discoverItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, discoverCandidate(cmd, env, c, validate))
	}
	return writeDiscoverResult(cmd, items)
}

// runDiscoverBoard shows one live row per candidate while they are inspected.
func runDiscoverBoard(cmd *cobra.Command, env *appEnv, patterns []string, validate toolchain.ValidateFunc) error {
	paths, err := toolchain.ExpandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return writeDiscoverResult(cmd, nil)
	}

	out := cmd.OutOrStdout()
	board := tui.NewBoard("Discovering interpreters", []tui.Column{
		{Header: "STATUS", Width: 10},
		{Header: "NAME", Width: 22},
		{Header: "PATH", Width: 48},
		{Header: "DETAIL", Width: 24},
	}, tui.NewStyles(out))
	for _, path := range paths {
		board.AddRow(path, tui.PendingStatus, "", path)
	}
	return tui.RunBoard(out, board, func(send func(tea.Msg)) {
		for _, path := range paths {
			c := toolchain.InspectCandidate(cmd.Context(), env.registry.Inspector, path)
			item := discoverCandidate(cmd, env, c, validate)
			send(tui.RowUpdateMsg{Key: path, Fields: map[string]string{
				"STATUS": item.Status,
				"NAME":   item.Name,
				"DETAIL": item.Error,
			}})
		}
	})
}

// discoverCandidate reports an inspected candidate and, with --register,
// registers it.
func discoverCandidate(cmd *cobra.Command, env *appEnv, c toolchain.Candidate, validate toolchain.ValidateFunc) discoverItem {
	item := discoverItem{Path: c.Path, Status: "found"}
	if c.Err != nil {
		item.Status = "error"
		item.Error = firstLine(c.Err.Error())
		return item
	}
	item.Name = c.Key.String()

	if !discoverRegister {
		return item
	}

	_, err := env.registry.Register(cmd.Context(), c.Path, "", validate)
	var conflict *toolchain.ConflictError
	var invalid *toolchain.ValidationError
	switch {
	case err == nil:
		item.Status = "registered"
	case errors.As(err, &conflict):
		item.Status = "conflict"
		item.Error = "already registered"
	case errors.As(err, &invalid):
		item.Status = "skipped"
		item.Error = invalid.Err.Error()
	default:
		item.Status = "error"
		item.Error = firstLine(err.Error())
	}
	return item
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func writeDiscoverResult(cmd *cobra.Command, items []discoverItem) error {
	out := cmd.OutOrStdout()
	if discoverOutputJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No interpreters found")
		return nil
	}

	styles := tui.NewStyles(out)
	for _, item := range items {
		label := item.Name
		if label == "" {
			label = "-"
		}
		line := fmt.Sprintf("%-12s %-22s %s", styles.Status(item.Status).Render(item.Status), label, item.Path)
		if item.Error != "" {
			line += " " + styles.Dim.Render("("+item.Error+")")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
