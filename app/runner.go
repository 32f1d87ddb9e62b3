// Package app wires configuration, logging and the demo collection into a
// runnable program.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"hop.computer/slist/config"
	"hop.computer/slist/demos"
	"hop.computer/slist/pkg/glob"
	"hop.computer/slist/pkg/thunks"
)

// ErrNoDemos is returned when the run patterns select nothing.
var ErrNoDemos = errors.New("no demo matches the run patterns")

// ErrUnknownDemo is returned when a run pattern without wildcards does not name
// a registered demo.
var ErrUnknownDemo = errors.New("unknown demo")

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureLogging points the standard logrus logger at w with the configured
// level. Colors are only used when color is true.
func ConfigureLogging(cfg *config.RunnerConfig, w io.Writer, color bool) {
	logrus.SetOutput(w)
	logrus.SetLevel(cfg.Level())
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: !color,
		FullTimestamp: true,
	})
}

// Runner runs the selected demos one after another, pausing between them.
type Runner struct {
	cfg    *config.RunnerConfig
	out    io.Writer
	log    *logrus.Entry
	styled bool
}

// NewRunner returns a runner writing demo output to out. styled enables
// lipgloss headers.
func NewRunner(cfg *config.RunnerConfig, out io.Writer, styled bool) *Runner {
	return &Runner{
		cfg:    cfg,
		out:    out,
		log:    logrus.WithField("patterns", strings.Join(cfg.Run, ",")),
		styled: styled,
	}
}

// Demos returns the demos the configuration selects, in run order. A pattern
// with no wildcard is an exact name, and naming a demo that does not exist is
// an error rather than an empty match.
func (r *Runner) Demos() ([]demos.Demo, error) {
	for _, p := range r.cfg.Run {
		if strings.ContainsAny(p, "*?") {
			continue
		}
		name := p
		if r.cfg.IgnoreCase {
			name = strings.ToLower(name)
		}
		if _, ok := demos.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, p)
		}
	}

	var opts []glob.Option
	if r.cfg.IgnoreCase {
		opts = append(opts, glob.CaseInsensitive)
	}
	return demos.Select(r.cfg.Run, opts...), nil
}

func (r *Runner) header(d demos.Demo) string {
	title := fmt.Sprintf("== %s ==", d.Name)
	if r.styled {
		return headerStyle.Render(title)
	}
	return title
}

// Run executes the selected demos in order. It sleeps for the configured pause
// between two demos, stops at the first failing demo, and returns early if ctx
// is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	selected, err := r.Demos()
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return ErrNoDemos
	}
	for i, d := range selected {
		if i > 0 {
			if err := thunks.Sleep(ctx, r.cfg.PauseDuration()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.out, r.header(d)); err != nil {
			return err
		}

		log := r.log.WithField("demo", d.Name)
		log.Debug("starting")
		start := thunks.TimeNow()
		env := &demos.Env{
			Out:     r.out,
			Log:     log,
			Workers: r.cfg.Workers,
		}
		if err := d.Run(ctx, env); err != nil {
			log.Errorf("failed: %s", err)
			return fmt.Errorf("demo %s: %w", d.Name, err)
		}
		log.WithField("elapsed", thunks.TimeNow().Sub(start)).Info("done")
	}
	return nil
}

// List writes one line per selected demo: its name and description.
func (r *Runner) List(w io.Writer) error {
	selected, err := r.Demos()
	if err != nil {
		return err
	}
	for _, d := range selected {
		if _, err := fmt.Fprintf(w, "%-28s %s\n", d.Name, d.Description); err != nil {
			return err
		}
	}
	return nil
}
