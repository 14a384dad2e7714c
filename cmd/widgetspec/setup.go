package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// serverName is the key widgetspec is registered under in agent configs.
const serverName = "widgetspec"

// agentDef describes how to register an MCP server with one AI agent.
// Agents with a Binary are configured through their own CLI; the rest by
// editing a JSON config file.
type agentDef struct {
	ID          string
	DisplayName string
	Binary      string
	DirMarkers  []string
	ConfigPath  func() string
	ServersKey  string
	ExtraFields map[string]string
}

type detectedAgent struct {
	def        agentDef
	configPath string
	configured bool
}

// Replaceable in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
	runCommand   = func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

var agentRegistry = []agentDef{
	{ID: "claude_code", DisplayName: "Claude Code", Binary: "claude"},
	{ID: "openai_codex", DisplayName: "OpenAI Codex", Binary: "codex"},
	{
		ID: "vscode", DisplayName: "VS Code",
		DirMarkers:  []string{".vscode"},
		ConfigPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor",
		DirMarkers: []string{".cursor"},
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		ID: "claude_desktop", DisplayName: "Claude Desktop",
		ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

// detectAgents returns the agents present on this machine or in the
// current project.
func detectAgents() []detectedAgent {
	var detected []detectedAgent
	for _, def := range agentRegistry {
		if def.Binary != "" {
			if _, err := lookPathFunc(def.Binary); err == nil {
				detected = append(detected, detectedAgent{
					def:        def,
					configured: hasServerEntry(".mcp.json", "mcpServers"),
				})
			}
			continue
		}

		found := false
		for _, marker := range def.DirMarkers {
			if _, err := statFunc(marker); err == nil {
				found = true
				break
			}
		}
		path := def.ConfigPath()
		if !found && len(def.DirMarkers) == 0 {
			_, err := statFunc(filepath.Dir(path))
			found = err == nil
		}
		if found {
			detected = append(detected, detectedAgent{
				def:        def,
				configPath: path,
				configured: hasServerEntry(path, def.ServersKey),
			})
		}
	}
	return detected
}

func hasServerEntry(configPath, serversKey string) bool {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, _ := config[serversKey].(map[string]any)
	_, ok := servers[serverName]
	return ok
}

// serveArgs are the arguments agents pass to the widgetspec binary.
func serveArgs(libraryRoot string) []string {
	args := []string{"serve"}
	if libraryRoot != "" {
		args = append(args, "--library-root", libraryRoot)
	}
	return args
}

func serverEntry(libraryRoot string, extra map[string]string) map[string]any {
	args := make([]any, 0, 3)
	for _, a := range serveArgs(libraryRoot) {
		args = append(args, a)
	}
	entry := map[string]any{
		"command": serverName,
		"args":    args,
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServerEntry adds entry under serversKey in the JSON document
// existing, keeping everything else. It returns nil, nil when widgetspec
// is already registered.
func mergeServerEntry(existing []byte, serversKey string, entry map[string]any) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverName]; exists {
		return nil, nil
	}
	servers[serverName] = entry
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func configureFileAgent(d detectedAgent, libraryRoot string) error {
	if err := os.MkdirAll(filepath.Dir(d.configPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	existing, err := os.ReadFile(d.configPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	merged, err := mergeServerEntry(existing, d.def.ServersKey, serverEntry(libraryRoot, d.def.ExtraFields))
	if err != nil || merged == nil {
		return err
	}
	return os.WriteFile(d.configPath, merged, 0o644)
}

func configureCLIAgent(d detectedAgent, scope, libraryRoot string) error {
	args := []string{"mcp", "add", "--scope", scope, serverName, "--", serverName}
	return runCommand(d.def.Binary, append(args, serveArgs(libraryRoot)...)...)
}

// promptYesNo asks question and reads Y/n. Empty input and EOF mean yes.
func promptYesNo(r *bufio.Scanner, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	if !r.Scan() {
		return true
	}
	answer := strings.ToLower(strings.TrimSpace(r.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

type setupOptions struct {
	auto        bool
	scope       string
	libraryRoot string
}

// executeSetup registers widgetspec with every detected agent, asking
// first unless opts.auto is set.
func executeSetup(r io.Reader, w io.Writer, opts setupOptions) {
	detected := detectAgents()
	if len(detected) == 0 {
		fmt.Fprintln(w, "No supported AI agents detected.")
		return
	}

	fmt.Fprintln(w, "Detected AI agents:")
	for _, d := range detected {
		suffix := ""
		if d.configured {
			suffix = " (already configured)"
		}
		fmt.Fprintf(w, "  * %s%s\n", d.def.DisplayName, suffix)
	}
	fmt.Fprintln(w)

	in := bufio.NewScanner(r)
	for _, d := range detected {
		if d.configured {
			continue
		}
		if !opts.auto && !promptYesNo(in, w, fmt.Sprintf("Add widgetspec to %s? [Y/n]", d.def.DisplayName)) {
			fmt.Fprintln(w, "  skipped")
			continue
		}

		var err error
		where := d.configPath
		if d.def.Binary != "" {
			err = configureCLIAgent(d, opts.scope, opts.libraryRoot)
			where = "scope: " + opts.scope
		} else {
			err = configureFileAgent(d, opts.libraryRoot)
		}
		if err != nil {
			fmt.Fprintf(w, "  ! %s: failed: %v\n", d.def.DisplayName, err)
			continue
		}
		fmt.Fprintf(w, "  + %s configured (%s)\n", d.def.DisplayName, where)
	}
}

func newSetupCmd(a *app) *cobra.Command {
	opts := setupOptions{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the widgetspec MCP server with installed AI agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.scope != "project" && opts.scope != "user" {
				return fmt.Errorf("scope must be project or user, got %q", opts.scope)
			}
			opts.libraryRoot = a.cfg.LibraryRoot
			executeSetup(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.auto, "auto", false, "configure every detected agent without asking")
	cmd.Flags().StringVar(&opts.scope, "scope", "project", "scope for CLI agents (project, user)")
	return cmd
}
