package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scfsim/internal/analysis"
	"github.com/san-kum/scfsim/internal/check"
	"github.com/san-kum/scfsim/internal/config"
	"github.com/san-kum/scfsim/internal/experiment"
	"github.com/san-kum/scfsim/internal/log"
	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string
	order      int
	scale      float64
	eps        float64
	method     string
	tolerance  float64
	t1         float64
	samples    int
	vxvv       []float64
	noSave     bool
	showPlot   bool
	only       []string

	degree       int
	axisymmetric bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "scfsim",
		Short:         "self-consistent-field potentials and orbit checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scfsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&order, "order", check.Order, "radial expansion order")
	rootCmd.PersistentFlags().Float64Var(&scale, "scale", config.DefaultScale, "scale radius")

	coeffsCmd := &cobra.Command{
		Use:   "coeffs [profile]",
		Short: "compute expansion coefficients of a profile and check them against its closed form",
		Args:  cobra.MaximumNArgs(1),
		RunE:  computeCoeffs,
	}
	coeffsCmd.Flags().IntVar(&degree, "l", 0, "angular order; above 1 uses the general solver")
	coeffsCmd.Flags().BoolVar(&axisymmetric, "axi", false, "with --l, solve only the m = 0 terms")
	coeffsCmd.Flags().Float64Var(&eps, "eps", check.Eps, "absolute tolerance")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "run the SCF validation checks",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	validateCmd.Flags().Float64Var(&eps, "eps", check.Eps, "absolute tolerance")
	validateCmd.Flags().StringSliceVar(&only, "only", nil, "run only the named checks")
	addOrbitFlags(validateCmd)

	orbitCmd := &cobra.Command{
		Use:   "orbit [profile]",
		Short: "integrate an orbit in the SCF expansion of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOrbit,
	}
	addOrbitFlags(orbitCmd)
	orbitCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	orbitCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the energy error")

	compareCmd := &cobra.Command{
		Use:   "compare [profile] [method1] [method2] ...",
		Short: "compare integration methods on the same orbit",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addOrbitFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbit extent, radial frequency and surface of section",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [profile]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(coeffsCmd, validateCmd, orbitCmd, compareCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.ErrorMsg("%v", err)
		os.Exit(1)
	}
}

func addOrbitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", string(orbit.MethodODEInt), "integration method")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive step tolerance")
	cmd.Flags().Float64Var(&t1, "time", config.DefaultT1, "integration end time")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of output samples")
	cmd.Flags().Float64SliceVar(&vxvv, "vxvv", nil, "initial [R,vR,vT,z,vz(,phi)]")
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Profile = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Profile, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Profile))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			fileCfg.Profile = args[0]
		}
		cfg = fileCfg
	}

	if changed(cmd, "order") {
		cfg.Order = order
	}
	if changed(cmd, "scale") {
		cfg.Scale = scale
	}
	if changed(cmd, "eps") {
		cfg.Eps = eps
	}
	if changed(cmd, "method") {
		cfg.Orbit.Method = method
	}
	if changed(cmd, "tol") {
		cfg.Orbit.Tolerance = tolerance
	}
	if changed(cmd, "time") {
		cfg.Orbit.T1 = t1
	}
	if changed(cmd, "samples") {
		cfg.Orbit.Samples = samples
	}
	if changed(cmd, "vxvv") {
		cfg.Orbit.VXVV = vxvv
	}
	return cfg, cfg.Validate()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func computeCoeffs(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if axisymmetric && degree <= 1 {
		return fmt.Errorf("--axi needs --l above 1, got %d", degree)
	}

	exp := experiment.New(experiment.Config{
		Profile:      cfg.Profile,
		Order:        cfg.Order,
		Degree:       degree,
		Axisymmetric: axisymmetric,
		Scale:        cfg.Scale,
	}, nil)
	start := time.Now()
	if err := exp.Setup(); err != nil {
		return err
	}
	coeffs := exp.Coeffs()
	N, L, M := coeffs.Shape()
	log.InfoMsg("computed %d × %d × %d coefficients for %s in %v", N, L, M, cfg.Profile, time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tL\tM\tACOS\tASIN")
	for n := 0; n < N; n++ {
		for l := 0; l < L; l++ {
			for m := 0; m < M && m <= l; m++ {
				fmt.Fprintf(w, "%d\t%d\t%d\t%.16g\t%.16g\n", n, l, m, coeffs.Cos[n][l][m], coeffs.Sin[n][l][m])
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := check.SphericalCoeffs(coeffs, cfg.Eps); err != nil {
		log.WarnMsg("%v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcomes := check.Run(ctx, exp.ReferenceChecks(cfg.Grid, cfg.Eps))
	fmt.Println(renderReport(outcomes))
	if failed := check.Failed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d reference checks failed", failed, len(outcomes))
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	checks := check.Suite(cfg.Check())
	if len(only) > 0 {
		checks, err = filterChecks(checks, only)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.InfoMsg("running %d checks (order %d, eps %g, %d grid points)", len(checks), cfg.Order, cfg.Eps, cfg.Grid.Size())
	outcomes := check.Run(ctx, checks)
	fmt.Println(renderReport(outcomes))

	if failed := check.Failed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(outcomes))
	}
	return nil
}

func filterChecks(checks []check.Check, names []string) ([]check.Check, error) {
	byName := make(map[string]check.Check, len(checks))
	for _, c := range checks {
		byName[c.Name] = c
	}
	out := make([]check.Check, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown check: %s", name)
		}
		out = append(out, c)
	}
	return out, nil
}

func newExperiment(cfg *config.Config, method string) *experiment.Experiment {
	return experiment.New(experiment.Config{
		Profile:   cfg.Profile,
		Order:     cfg.Order,
		Scale:     cfg.Scale,
		Method:    method,
		VXVV:      cfg.Orbit.VXVV,
		Times:     cfg.Times(),
		Tolerance: cfg.Orbit.Tolerance,
	}, nil)
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := newExperiment(cfg, cfg.Orbit.Method)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.InfoMsg("integrating %s orbit %v with %s", cfg.Profile, cfg.Orbit.VXVV, cfg.Orbit.Method)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, name := range []string{"energy_drift", "energy_variance"} {
		fmt.Printf("  %s: %.6e\n", name, result.Metrics[name])
	}

	if showPlot && len(result.Energies) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(relativeError(result.Energies),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("(E - E0) / |E0|"),
		))
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Profile:   cfg.Profile,
		Order:     cfg.Order,
		Scale:     cfg.Scale,
		Method:    cfg.Orbit.Method,
		Tolerance: cfg.Orbit.Tolerance,
		VXVV:      cfg.Orbit.VXVV,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func relativeError(energies []float64) []float64 {
	out := make([]float64, len(energies))
	e0 := energies[0]
	for i, e := range energies {
		if e0 != 0 {
			out[i] = (e - e0) / math.Abs(e0)
		} else {
			out[i] = e
		}
	}
	return out
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	methods := args[1:]
	if len(methods) == 0 {
		methods = experiment.NewRegistry().ListMethods()
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing methods on %s orbit %v, t in [%g, %g]\n\n", cfg.Profile, cfg.Orbit.VXVV, cfg.Orbit.T0, cfg.Orbit.T1)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTEPS\tTIME\tENERGY_DRIFT\tENERGY_VARIANCE")

	for _, m := range methods {
		exp := newExperiment(cfg, m)
		if err := exp.Setup(); err != nil {
			return err
		}
		start := time.Now()
		result, err := exp.Run(ctx)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%v\t\n", m, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.3e\t%.3e\n",
			m, result.StepsTaken, time.Since(start).Round(time.Millisecond),
			result.Metrics["energy_drift"], result.Metrics["energy_variance"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tTIME\tORDER\tMETHOD\tSAMPLES\tT1\tENERGY_VAR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%g\t%.2e\n",
			run.ID,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Order,
			run.Method,
			run.Samples,
			run.T1,
			run.Metrics["energy_variance"],
		)
	}
	return w.Flush()
}

var plotCaptions = []string{"R", "vR", "vT", "z", "vz", "phi"}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, energies, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("profile: %s\n", meta.Profile)
	fmt.Printf("samples: %d\n\n", len(states))

	for _, idx := range []int{0, 3} {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaptions[idx]+" vs time"),
		))
		fmt.Println()
	}

	fmt.Println(asciigraph.Plot(relativeError(energies),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("(E - E0) / |E0|"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	sum, err := analysis.Summarize(times, states)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, %s)\n\n", meta.ID, meta.Profile, meta.Method)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "rperi\t%.6f\n", sum.RPeri)
	fmt.Fprintf(w, "rap\t%.6f\n", sum.RAp)
	fmt.Fprintf(w, "e\t%.6f\n", sum.Eccentricity)
	fmt.Fprintf(w, "zmax\t%.6f\n", sum.ZMax)
	fmt.Fprintf(w, "radial frequency\t%.6f\n", sum.RadialFrequency)
	if err := w.Flush(); err != nil {
		return err
	}

	portrait, err := analysis.NewPortrait(analysis.Column(states, 0), analysis.Column(states, 3))
	if err != nil {
		return err
	}
	fmt.Println("\nmeridional plane (R, z):")
	fmt.Print(portrait.ASCII(80, 20))

	section, err := analysis.Section(states, 3, 0, 0, 1)
	if err != nil {
		log.WarnMsg("no z = 0 crossings; skipping surface of section")
		return nil
	}
	fmt.Printf("\nsurface of section z = 0, vz > 0 (R, vR), %d crossings:\n", len(section.Points))
	fmt.Print(section.ASCII(80, 20))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	profiles := config.ListProfiles()
	if len(args) > 0 {
		profiles = args
	}
	for _, profile := range profiles {
		presets := config.ListPresets(profile)
		if len(presets) == 0 {
			fmt.Printf("no presets for profile: %s\n", profile)
			continue
		}
		fmt.Printf("presets for %s:\n", profile)
		for _, p := range presets {
			c := config.GetPreset(profile, p)
			fmt.Printf("  %-10s %s %v t1=%g\n", p, c.Orbit.Method, c.Orbit.VXVV, c.Orbit.T1)
		}
	}
	fmt.Printf("\nprofiles: %s\n", strings.Join(experiment.NewRegistry().ListProfiles(), ", "))
	return nil
}
