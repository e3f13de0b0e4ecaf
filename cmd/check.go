package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/sieve/internal/highlight"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/pubsub"
	"github.com/zjrosen/sieve/internal/surface"
	"github.com/zjrosen/sieve/internal/ui/styles"
	"github.com/zjrosen/sieve/internal/watcher"
)

// errCheckFailed marks a filter that did not parse. The report has already
// been printed.
var errCheckFailed = errors.New("filter did not parse")

var checkCmd = &cobra.Command{
	Use:   "check [filter...]",
	Short: "Highlight, diagnose, and parse a filter",
	Long: `Check highlights a filter, prints its diagnostics, and parses it.
The filter is read from the arguments, from --file, or from stdin.
The exit status is non-zero when the filter does not parse.`,
	Example: `  sieve check 'status = "open" & priority < 2'
  sieve check --file query.filter --watch
  echo 'a = 1' | sieve check --json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("file", "f", "", "read the filter from a file")
	checkCmd.Flags().Bool("no-color", false, "disable colors")
	checkCmd.Flags().Bool("runs", false, "print the highlighted run tree")
	checkCmd.Flags().Bool("json", false, "print render and submit events as JSON lines")
	checkCmd.Flags().BoolP("watch", "w", false, "re-check whenever --file changes")
	rootCmd.AddCommand(checkCmd)
}

// reporter prints the outcome of one check.
type reporter interface {
	Report(s *surface.Surface, submitErr error)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, err := startRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	file, _ := cmd.Flags().GetString("file")
	noColor, _ := cmd.Flags().GetBool("no-color")
	showRuns, _ := cmd.Flags().GetBool("runs")
	asJSON, _ := cmd.Flags().GetBool("json")
	watch, _ := cmd.Flags().GetBool("watch")

	if watch && file == "" {
		return errors.New("--watch requires --file")
	}
	if noColor || asJSON {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	opts := rt.surfaceOptions()
	var rep reporter = &textReporter{w: out, theme: highlight.CurrentTheme(), showRuns: showRuns}

	var broker *pubsub.Broker[surface.Event]
	if asJSON {
		broker = pubsub.NewBroker[surface.Event]()
		opts.Publisher = broker
		done := streamEvents(ctx, out, broker)
		defer func() {
			broker.Close()
			<-done
		}()
		rep = nopReporter{}
	}
	s := surface.New(opts)

	text, err := readFilter(cmd.InOrStdin(), file, args)
	if err != nil {
		return err
	}
	checkErr := checkOnce(ctx, s, text, rep)
	if !watch {
		return checkErr
	}

	w, err := watcher.New(watcher.DefaultConfig(file))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	changes, err := w.Start()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			text, err := readFilter(nil, file, nil)
			if err != nil {
				log.ErrorErr(log.CatWatch, "re-reading filter failed", err, "path", file)
				continue
			}
			if broker != nil {
				broker.Publish(pubsub.ReloadedEvent, surface.Event{SurfaceID: s.ID(), Text: text})
			} else {
				_, _ = fmt.Fprintln(out, styles.HelpStyle.Render("── "+file+" changed"))
			}
			_ = checkOnce(ctx, s, text, rep)
		}
	}
}

// readFilter returns the filter from args, file, or stdin, in that order.
// A single trailing line break from a file or stdin is dropped.
func readFilter(stdin io.Reader, file string, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	var (
		data []byte
		err  error
	)
	switch {
	case file != "":
		data, err = os.ReadFile(file)
	case stdin != nil:
		data, err = io.ReadAll(stdin)
	default:
		return "", errors.New("no filter given")
	}
	if err != nil {
		return "", fmt.Errorf("reading filter: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// checkOnce runs one content-changed cycle and a submit over text.
func checkOnce(ctx context.Context, s *surface.Surface, text string, rep reporter) error {
	s.Reset(text)
	s.ContentChanged(ctx)
	err := s.Submit(ctx)
	rep.Report(s, err)
	if err != nil {
		return errCheckFailed
	}
	return nil
}

type textReporter struct {
	w        io.Writer
	theme    highlight.Theme
	showRuns bool
}

func (r *textReporter) Report(s *surface.Surface, submitErr error) {
	_, _ = fmt.Fprintln(r.w, r.theme.Paint(s.Tree()))
	if r.showRuns {
		_, _ = fmt.Fprintln(r.w, s.Tree().String())
	}
	if slot := s.ErrorSlot(); slot.Visible {
		for _, line := range strings.Split(slot.Text, "\n") {
			_, _ = fmt.Fprintln(r.w, styles.ErrorSlotStyle.Render("✗ "+line))
		}
	}
	if submitErr != nil {
		_, _ = fmt.Fprintln(r.w, styles.ErrorSlotStyle.Render("✗ "+submitErr.Error()))
		return
	}
	result, _ := s.LastSubmit()
	_, _ = fmt.Fprintf(r.w, "%s %s\n",
		styles.SuccessStyle.Render("✓ "+result.Search.String()),
		styles.HelpStyle.Render(fmt.Sprintf("(%d comparisons)", result.Search.Comparisons())))
}

type nopReporter struct{}

func (nopReporter) Report(*surface.Surface, error) {}

// eventRecord is the JSON form of a surface event.
type eventRecord struct {
	Type        string   `json:"type"`
	Surface     string   `json:"surface"`
	Seq         uint64   `json:"seq,omitempty"`
	Text        string   `json:"text"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Filter      string   `json:"filter,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// streamEvents writes every event from broker to w as one JSON line. The
// returned channel closes once the broker is closed and all events are
// written.
func streamEvents(ctx context.Context, w io.Writer, broker *pubsub.Broker[surface.Event]) <-chan struct{} {
	done := make(chan struct{})
	events := broker.Subscribe(ctx)
	enc := json.NewEncoder(w)
	go func() {
		defer close(done)
		for ev := range events {
			rec := eventRecord{
				Type:        string(ev.Type),
				Surface:     ev.Payload.SurfaceID,
				Seq:         ev.Payload.Seq,
				Text:        ev.Payload.Text,
				Diagnostics: ev.Payload.Diagnostics,
			}
			if sub := ev.Payload.Submit; sub != nil {
				if sub.Err != nil {
					rec.Error = sub.Err.Error()
				} else if sub.Search != nil {
					rec.Filter = sub.Search.String()
				}
			}
			if err := enc.Encode(rec); err != nil {
				log.ErrorErr(log.CatSubmit, "writing event failed", err)
			}
		}
	}()
	return done
}
