package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"deepsearch/internal/agent"
	"deepsearch/internal/config"
	"deepsearch/internal/event"
	"deepsearch/internal/history"
	"deepsearch/internal/openrouter"
	"deepsearch/internal/present"
	"deepsearch/internal/runner"
	"deepsearch/internal/session"
	"deepsearch/internal/ui/live"
)

// Test seams for the search command.
var (
	executeSearch = runner.Run
	buildSolver   = runner.BuildSolver
	searchInput   io.Reader
	apiKeyEnv     = func() string { return os.Getenv(openrouter.EnvAPIKey) }
)

// runSearch builds the handler for the search command.
func runSearch(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: auto-detect)")
		liveUI := flags.Bool("live", false, "Show the live terminal UI")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		maxIterations := flags.Int("max-iterations", 0, "Override max agent iterations")
		outputDir := flags.String("output-dir", "", "Override output directory")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}

		apiKey := apiKeyEnv()
		if strings.TrimSpace(apiKey) == "" {
			fmt.Fprintf(stderr, "%s is not set\n", openrouter.EnvAPIKey)
			return ExitError
		}

		subject := strings.TrimSpace(strings.Join(flags.Args(), " "))
		if subject == "" {
			in := searchInput
			if in == nil {
				in = os.Stdin
			}
			prompted, err := promptString(bufio.NewReader(in), stdout, "Subject", "")
			if err != nil {
				fmt.Fprintf(stderr, "Search failed: %v\n", err)
				return ExitError
			}
			subject = strings.TrimSpace(prompted)
		}

		resolvedPath, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Search failed: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		root := config.RootFromConfigPath(resolvedPath)
		if *maxIterations > 0 {
			cfg.Search.MaxIterations = *maxIterations
		}
		if *outputDir != "" {
			cfg.Search.OutputDir = *outputDir
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

		sess := session.New(subject)

		var sink agent.Sink
		var confirmer agent.Confirmer
		var controller *live.Controller
		if *liveUI {
			controller = live.Start(stdout, live.Options{
				Subject:   subject,
				Model:     cfg.LLM.Model,
				SessionID: sess.ID(),
				NoColor:   *noColor,
			})
			sink = &sessionSink{session: sess, next: controller}
			confirmer = agent.AlwaysYes{Notify: confirmationNotifier(sink)}
		} else {
			console := &present.Console{Out: stdout, NoColor: *noColor, Session: sess}
			sink = console
			confirmer = agent.AlwaysYes{Notify: console.Question}
		}

		solver, err := buildSolver(cfg, root, apiKey, sink, confirmer)
		if err != nil {
			closeLive(controller)
			fmt.Fprintf(stderr, "Search failed: %v\n", err)
			return ExitError
		}

		result, err := executeSearch(context.Background(), runner.Params{
			Subject: subject,
			Config:  cfg,
			Root:    root,
			Session: sess,
			Solver:  solver,
			History: store,
			Stderr:  stderr,
		})
		closeLive(controller)
		if err != nil {
			fmt.Fprintf(stderr, "Search failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintln(stdout)
		if result.ReportFound {
			fmt.Fprintf(stdout, "Report: %s\n\n", filepath.Join(result.OutputDir, result.ReportFile))
			fmt.Fprint(stdout, result.Report)
			if !strings.HasSuffix(result.Report, "\n") {
				fmt.Fprintln(stdout)
			}
		} else {
			fmt.Fprintf(stdout, "No report file was produced; final answer:\n%s\n", result.Answer)
		}
		return ExitOK
	}
}

// sessionSink records into the session before forwarding to the UI.
type sessionSink struct {
	session *session.Session
	next    agent.Sink
}

func (s *sessionSink) Event(evt event.Event) {
	s.session.Record(evt)
	s.next.Event(evt)
}

func (s *sessionSink) Token(token string) {
	s.session.AppendToken(token)
	s.next.Token(token)
}

// confirmationNotifier turns the agent's yes/no question into a
// lifecycle event so sinks without their own question channel still
// show it, paired with the always-yes answer.
func confirmationNotifier(sink agent.Sink) func(string) {
	return func(question string) {
		sink.Event(event.New("confirmation", event.Mapping(
			"question", question,
			"answer", "yes",
		)))
	}
}

// closeLive shuts the live UI down and waits for the terminal to be
// restored before anything else is printed.
func closeLive(controller *live.Controller) {
	if controller == nil {
		return
	}
	controller.Done()
	controller.Close()
	controller.Wait()
}

// resolveRootPath anchors a relative path at the project root.
func resolveRootPath(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
