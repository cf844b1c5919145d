package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nodelens/internal/ast"
	nlerrors "nodelens/internal/errors"
	"nodelens/internal/eventloop"
	"nodelens/internal/paths"
	"nodelens/internal/slogutil"
	"nodelens/internal/watcher"
)

var (
	watchLine    int
	watchCol     int
	watchShowAll bool
	watchSelect  string
	watchFormat  string
	watchLogFile bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-inspect a position whenever the file changes",
	Long: `Watch a source file and re-inspect the node at --line/--col after every
change. Each round is printed; JSON output is written one object per line.

The scope tree selection made with --select is carried over to the next
round when an equal item exists no deeper than before (see
inspector.preserveScopeSelection).

Examples:
  nodelens watch main.go --line 12 --col 5
  nodelens watch main.go --line 12 --col 5 --select sum --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchLine, "line", 0, "1-based line of the node")
	watchCmd.Flags().IntVar(&watchCol, "col", 0, "1-based column of the node")
	watchCmd.Flags().BoolVar(&watchShowAll, "show-all", false, "Show positional attributes too")
	watchCmd.Flags().StringVar(&watchSelect, "select", "", "Select the scope tree item with this name on the first round")
	watchCmd.Flags().StringVar(&watchFormat, "format", "human", "Output format (human, json, yaml)")
	watchCmd.Flags().BoolVar(&watchLogFile, "log-file", true, "Also log to .nodelens/logs/nodelens.log")
	_ = watchCmd.MarkFlagRequired("line")
	_ = watchCmd.MarkFlagRequired("col")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd, watchFormat)
	if err != nil {
		return err
	}
	if watchLine < 1 || watchCol < 1 {
		return nlerrors.New(nlerrors.InvalidArgument, "--line and --col are 1-based and required", nil)
	}
	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return nlerrors.New(nlerrors.InvalidArgument, "invalid path "+args[0], err)
	}

	log, closer, err := openWatchLogger(cmd)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New()
	s, err := newSession(loop, resolveShowAll(ctx, cmd.Flags().Changed("show-all"), watchShowAll), log)
	if err != nil {
		return err
	}

	r := &watchRound{
		ctx:     ctx,
		out:     cmd.OutOrStdout(),
		format:  format,
		parser:  ast.NewParser(),
		path:    filePath,
		session: s,
		logger:  log,
		pending: watchSelect,
	}

	// The first round must succeed so that bad input fails fast. Later
	// rounds only clear the views when the position disappears.
	if err := r.run(); err != nil {
		return err
	}

	w, err := watcher.New(filePath, watcher.Config{DebounceMs: cfg.Watch.DebounceMs}, log,
		func(string, []watcher.Event) {
			loop.Post(func() {
				if err := r.run(); err != nil {
					log.Warn("Re-inspection failed", "file", filePath, "error", err)
				}
			})
		})
	if err != nil {
		return nlerrors.New(nlerrors.InternalError, "failed to create watcher", err)
	}
	log.Debug("Watch session started",
		"file", paths.DisplayPath(w.Path(), repoRoot),
		"line", watchLine,
		"column", watchCol,
		"format", string(format),
	)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Run(ctx)
		stop()
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if n := loop.Pending(); n > 0 {
		log.Debug("Dropped pending rounds on shutdown", "count", n)
	}
	if err := <-watchErr; err != nil {
		return nlerrors.New(nlerrors.InternalError, "file watcher failed", err)
	}
	return nil
}

// openWatchLogger tees the console logger into the rotating log file under
// .nodelens/logs when enabled.
func openWatchLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	if !watchLogFile {
		return logger, nil, nil
	}
	if err := os.MkdirAll(paths.LogsDir(repoRoot), 0755); err != nil {
		logger.Warn("Log directory unavailable, logging to console only", "error", err)
		return logger, nil, nil
	}
	log, closer, err := slogutil.Open(os.Stderr, slogutil.Options{
		Level:      consoleLevel(cmd),
		Format:     cfg.Logging.Format,
		File:       paths.LogPath(repoRoot),
		FileLevel:  slog.LevelDebug,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		logger.Warn("Log file unavailable, logging to console only", "error", err)
		return logger, nil, nil
	}
	return log, closer, nil
}

// watchRound re-parses the file and refocuses the watched position. It runs
// on the event loop goroutine.
type watchRound struct {
	ctx     context.Context
	out     io.Writer
	format  OutputFormat
	parser  *ast.Parser
	path    string
	session *session
	logger  *slog.Logger
	pending string
	rounds  int
}

func (r *watchRound) run() error {
	tree, err := parseFile(r.ctx, r.parser, r.path)
	if err != nil {
		return err
	}

	node, err := nodeAt(tree, watchLine, watchCol)
	switch {
	case err != nil && r.rounds == 0:
		return err
	case err != nil:
		// The position fell outside the edited file; clear the views.
		r.logger.Warn("No node at watched position", "line", watchLine, "column", watchCol)
		r.session.focus(nil, false)
	default:
		r.session.focus(node, cfg.Inspector.PreserveScopeSelection)
	}

	if r.pending != "" {
		name := r.pending
		r.pending = ""
		if err := r.session.selectByName(name); err != nil {
			return err
		}
	}

	r.rounds++
	return r.print(tree)
}

func (r *watchRound) print(tree *ast.Tree) error {
	resp := newInspectResponse(tree, watchLine, watchCol, r.session)

	var out string
	var err error
	switch r.format {
	case FormatJSON:
		var data []byte
		data, err = outputLine(resp)
		out = string(data)
	case FormatHuman:
		out, err = FormatResponse(resp, r.format)
		out = fmt.Sprintf("--- round %d at %s ---\n%s\n", r.rounds, time.Now().Format("15:04:05"), out)
	default:
		out, err = FormatResponse(resp, r.format)
		out = "---\n" + out
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, out)
	return err
}
