package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/scfsim/internal/check"
)

func TestFilterChecks(t *testing.T) {
	checks := check.Suite(check.DefaultConfig())

	got, err := filterChecks(checks, []string{"dens_matches_zeeuw", "scf_compute_spherical_hernquist"})
	if err != nil {
		t.Fatalf("filterChecks: %v", err)
	}
	if len(got) != 2 || got[0].Name != "dens_matches_zeeuw" {
		t.Errorf("unexpected selection %v", got)
	}

	if _, err := filterChecks(checks, []string{"nope"}); err == nil {
		t.Error("expected error for unknown check")
	}
}

func TestRelativeError(t *testing.T) {
	got := relativeError([]float64{-2, -2.2, -1.8})
	want := []float64{0, -0.1, 0.1}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-12 || d < -1e-12 {
			t.Errorf("relativeError[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRenderReport(t *testing.T) {
	outcomes := check.Run(context.Background(), []check.Check{
		{Name: "ok", Run: func(context.Context) error { return nil }},
		{Name: "broken", Run: func(context.Context) error { return errors.New("Comparing the density fails") }},
	})
	report := renderReport(outcomes)
	for _, want := range []string{"PASS", "FAIL", "broken", "Comparing the density fails", "1 passed", "1 failed"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestComputeCoeffs_ChecksReference(t *testing.T) {
	t.Cleanup(func() { degree, axisymmetric = 0, false })

	for _, profile := range []string{"hernquist", "zeeuw"} {
		if err := computeCoeffs(&cobra.Command{}, []string{profile}); err != nil {
			t.Errorf("coeffs %s: %v", profile, err)
		}
	}

	degree, axisymmetric = 1, true
	if err := computeCoeffs(&cobra.Command{}, []string{"zeeuw"}); err == nil {
		t.Error("expected error for --axi without --l")
	}
}
