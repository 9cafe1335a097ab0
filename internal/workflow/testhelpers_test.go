package workflow

import (
	"testing"
	"time"

	"slidedeck/internal/export"
	"slidedeck/internal/logging"
	"slidedeck/internal/selector"
	"slidedeck/internal/testsupport"
)

type harness struct {
	svc        *testsupport.FakeService
	controller *Controller
	exportDir  string
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	svc := testsupport.NewFakeService(t)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithServer(svc.URL())}, opts...)...)
	return &harness{
		svc:        svc,
		controller: NewFromConfig(cfg, export.NewFileSaver(cfg.Export.Dir), logging.NewNop()),
		exportDir:  cfg.Export.Dir,
	}
}

func deck(name string) selector.Candidate {
	return selector.Candidate{Name: name, Content: []byte("PK\x03\x04" + name)}
}

// waitForState polls until the lifecycle reaches want.
func waitForState(t *testing.T, read func() Lifecycle, want RequestState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if read().State == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("lifecycle never reached %s (last %+v)", want, read())
}
