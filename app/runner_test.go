package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"hop.computer/slist/config"
	"hop.computer/slist/pkg/thunks"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(t *testing.T, run ...string) *config.RunnerConfig {
	t.Helper()
	c := &config.RunnerConfig{Run: run, Workers: 3, Pause: "1h"}
	assert.NilError(t, c.Validate())
	return c
}

func TestRunSequencesDemos(t *testing.T) {
	defer goleak.VerifyNone(t)
	thunks.SetUpTest()
	defer thunks.TearDownTest()

	var pauses []time.Duration
	thunks.Sleep = func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	out := new(bytes.Buffer)
	r := NewRunner(testConfig(t, "ownership/*", "heap/*", "concurrency/guarded-list"), out, false)
	assert.NilError(t, r.Run(context.Background()))

	assert.DeepEqual(t, []time.Duration{time.Hour, time.Hour}, pauses)
	assert.Equal(t, strings.Join([]string{
		"== ownership/shared-mutation ==",
		"I shall mutate this!!!",
		"== heap/linked-list ==",
		"This is the popped_value: Such wow",
		"Lol",
		"rofl",
		"kekw",
		"x'D",
		"== concurrency/guarded-list ==",
		"Guarded list holds 3 values after 3 inserts",
		"",
	}, "\n"), out.String())
}

func TestRunAll(t *testing.T) {
	defer goleak.VerifyNone(t)
	thunks.SetUpTest()
	defer thunks.TearDownTest()

	out := new(bytes.Buffer)
	r := NewRunner(testConfig(t), out, false)
	assert.NilError(t, r.Run(context.Background()))
	assert.Check(t, is.Contains(out.String(), "After thread handlers finished printing."))
	assert.Check(t, is.Contains(out.String(), "Message sent No. 2"))
	assert.Check(t, is.Contains(out.String(), "Counter: "))
}

func TestRunNoMatch(t *testing.T) {
	r := NewRunner(testConfig(t, "nothing/*"), io.Discard, false)
	assert.Check(t, errors.Is(r.Run(context.Background()), ErrNoDemos))
}

func TestRunCancelledBetweenDemos(t *testing.T) {
	defer goleak.VerifyNone(t)
	thunks.SetUpTest()
	defer thunks.TearDownTest()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := new(bytes.Buffer)
	r := NewRunner(testConfig(t, "ownership/*", "heap/*"), out, false)
	err := r.Run(ctx)
	assert.Check(t, errors.Is(err, context.Canceled))
	assert.Check(t, is.Contains(out.String(), "I shall mutate this!!!"))
	assert.Check(t, !strings.Contains(out.String(), "heap/linked-list"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRunWriteError(t *testing.T) {
	r := NewRunner(testConfig(t, "heap/*"), failingWriter{}, false)
	assert.ErrorContains(t, r.Run(context.Background()), "closed pipe")
}

func TestStyledHeader(t *testing.T) {
	out := new(bytes.Buffer)
	r := NewRunner(testConfig(t, "ownership/*"), out, true)
	assert.NilError(t, r.Run(context.Background()))
	assert.Check(t, is.Contains(out.String(), "ownership/shared-mutation"))
}

func TestIgnoreCase(t *testing.T) {
	c := testConfig(t, "HEAP/*")
	ds, err := NewRunner(c, io.Discard, false).Demos()
	assert.NilError(t, err)
	assert.Check(t, is.Len(ds, 0))

	c.IgnoreCase = true
	ds, err = NewRunner(c, io.Discard, false).Demos()
	assert.NilError(t, err)
	assert.Check(t, is.Len(ds, 1))
}

func TestExactNames(t *testing.T) {
	ds, err := NewRunner(testConfig(t, "concurrency/channels", "heap/linked-list"), io.Discard, false).Demos()
	assert.NilError(t, err)
	assert.Assert(t, is.Len(ds, 2))
	assert.Check(t, is.Equal("heap/linked-list", ds[0].Name))
	assert.Check(t, is.Equal("concurrency/channels", ds[1].Name))

	c := testConfig(t, "Heap/Linked-List")
	c.IgnoreCase = true
	ds, err = NewRunner(c, io.Discard, false).Demos()
	assert.NilError(t, err)
	assert.Check(t, is.Len(ds, 1))
}

func TestRunUnknownDemo(t *testing.T) {
	r := NewRunner(testConfig(t, "heap/*", "heap/linked-lst"), io.Discard, false)
	err := r.Run(context.Background())
	assert.Check(t, errors.Is(err, ErrUnknownDemo), "got %v", err)
	assert.Check(t, is.ErrorContains(err, "heap/linked-lst"))

	// Without ignore-case the exact name must match as written.
	err = NewRunner(testConfig(t, "HEAP/linked-list"), io.Discard, false).List(io.Discard)
	assert.Check(t, errors.Is(err, ErrUnknownDemo), "got %v", err)
}

func TestList(t *testing.T) {
	out := new(bytes.Buffer)
	r := NewRunner(testConfig(t, "concurrency/*"), io.Discard, false)
	assert.NilError(t, r.List(out))
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Assert(t, is.Len(got, 4))
	assert.Check(t, strings.HasPrefix(got[0], "concurrency/join-handles"))
}

func TestConfigureLogging(t *testing.T) {
	defer logrus.SetOutput(io.Discard)
	defer logrus.SetLevel(logrus.InfoLevel)

	c := &config.RunnerConfig{LogLevel: "debug"}
	assert.NilError(t, c.Validate())
	out := new(bytes.Buffer)
	ConfigureLogging(c, out, false)
	logrus.WithField("demo", "x").Debug("hello")
	assert.Check(t, is.Contains(out.String(), "hello"))
	assert.Check(t, is.Contains(out.String(), "demo=x"))
}

func TestRunLogsPatterns(t *testing.T) {
	thunks.SetUpTest()
	defer thunks.TearDownTest()
	defer logrus.SetOutput(io.Discard)
	defer logrus.SetLevel(logrus.InfoLevel)

	c := testConfig(t, "ownership/*", "heap/linked-list")
	out := new(bytes.Buffer)
	ConfigureLogging(c, out, false)
	assert.NilError(t, NewRunner(c, io.Discard, false).Run(context.Background()))

	logged := out.String()
	assert.Check(t, is.Contains(logged, `patterns="ownership/*,heap/linked-list"`))
	assert.Check(t, is.Contains(logged, "demo=heap/linked-list"))
	assert.Check(t, !strings.Contains(logged, "runner="))
}
