package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"deepsearch/internal/agent"
	"deepsearch/internal/config"
	"deepsearch/internal/history"
	"deepsearch/internal/webui"
)

// serveWeb is a test seam for running the web server.
var serveWeb = webui.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: auto-detect)")
		addr := flags.String("addr", "", "Address to listen on (default: serve.addr from config)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		apiKey := apiKeyEnv()
		if strings.TrimSpace(apiKey) == "" {
			fmt.Fprintf(stderr, "OPENROUTER_API_KEY is not set\n")
			return ExitError
		}

		resolvedPath, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		root := config.RootFromConfigPath(resolvedPath)
		listenAddr := cfg.Serve.Addr
		if *addr != "" {
			listenAddr = *addr
		}

		var store *history.Store
		if cfg.History.Enabled {
			store, err = history.Open(resolveRootPath(root, cfg.History.DBPath))
			if err != nil {
				fmt.Fprintf(stderr, "warning: open history: %v\n", err)
			} else {
				defer store.Close()
			}
		}

		webCfg := webui.Config{
			Addr:    listenAddr,
			Root:    root,
			Spec:    cfg,
			History: store,
			Stderr:  stderr,
		}
		webCfg.NewSolver = func(sink agent.Sink) (agent.Solver, error) {
			return buildSolver(cfg, root, apiKey, sink, agent.AlwaysYes{Notify: confirmationNotifier(sink)})
		}

		fmt.Fprintf(stdout, "Serving at http://%s\n", listenAddr)
		if err := serveWeb(context.Background(), webCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
