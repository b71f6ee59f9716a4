package sim

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/space"
)

func testSpace(t *testing.T) *space.Space {
	t.Helper()
	s, err := space.New(2, geom.Vec(1000, 1000), space.DefaultParams(), space.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	s.AddBody(body.New(10, 2, geom.Vec(450, 500)))
	s.AddBody(body.New(10, 2, geom.Vec(550, 500)))
	return s
}

func TestSimulatorRun(t *testing.T) {
	sim := New(testSpace(t))

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if result.Frames[0].Kinetic != 0 {
		t.Errorf("bodies should start at rest")
	}
	last := result.Frames[len(result.Frames)-1]
	if last.Kinetic <= 0 {
		t.Error("expected kinetic energy to grow as bodies attract")
	}
	if math.Abs(last.Time-1.0) > 1e-9 {
		t.Errorf("last frame time = %v", last.Time)
	}
}

func TestSimulatorSnapshotEvery(t *testing.T) {
	sim := New(testSpace(t))

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0, SnapshotEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(result.Frames))
	}
	if result.Frames[2].Step != 10 {
		t.Errorf("unexpected frame step %d", result.Frames[2].Step)
	}
	if got := result.KineticSeries(); len(got) != 3 {
		t.Errorf("kinetic series length %d", len(got))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(testSpace(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(testSpace(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, Config{Dt: 0.1, Duration: 1.0})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	s := testSpace(t)
	s.Bodies()[0].Velocity = geom.Vec(math.NaN(), 0)
	sim := New(s)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
	if _, ok := result.Errors[0].(SimError); !ok {
		t.Errorf("expected SimError, got %T", result.Errors[0])
	}
}

type testMetric struct {
	count int
}

func (m *testMetric) Name() string                      { return "test" }
func (m *testMetric) Observe(_ *space.Space, _ float64) { m.count++ }
func (m *testMetric) Value() float64                    { return float64(m.count) }
func (m *testMetric) Reset()                            { m.count = 0 }

type testObserver struct {
	steps []int
}

func (o *testObserver) OnStep(_ *space.Space, step int, _ float64) { o.steps = append(o.steps, step) }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := New(testSpace(t))
	metric := &testMetric{}
	obs := &testObserver{}
	sim.AddMetric(metric)
	sim.AddObserver(obs)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["test"] != 10 {
		t.Errorf("expected 10 observations, got %v", result.Metrics["test"])
	}
	if len(obs.steps) != 10 || obs.steps[0] != 1 || obs.steps[9] != 10 {
		t.Errorf("unexpected observer steps %v", obs.steps)
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(testSpace(t))

	calls := 0
	err := sim.RunWithCallback(context.Background(), Config{Dt: 0.1, Duration: 10}, func(_ *space.Space, _ float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callbacks, got %d", calls)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
