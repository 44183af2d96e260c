// Command skytarget manages a catalog of observation targets and computes
// their apparent positions from configured observatory sites.
//
// Usage:
//
//	skytarget [flags] import <targets.json>
//	skytarget [flags] list
//	skytarget [flags] show <identifier>
//	skytarget [flags] delete <identifier>
//	skytarget [flags] visibility <identifier> -start <RFC3339> [-end <RFC3339>] [-interval <minutes>]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/signalsfoundry/skytarget/core"
	"github.com/signalsfoundry/skytarget/ephem"
	"github.com/signalsfoundry/skytarget/facility"
	"github.com/signalsfoundry/skytarget/internal/logging"
	"github.com/signalsfoundry/skytarget/internal/observability"
	"github.com/signalsfoundry/skytarget/internal/store/sqlite"
	"github.com/signalsfoundry/skytarget/model"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", "data/skytarget.db", "path to the catalog database")
	facilitiesPath := flag.String("facilities", "", "YAML file describing observatory facilities and sites")
	ephemerisPath := flag.String("ephemeris", "", "planetary element table JSON (default: embedded table)")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty disables)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		fatal(ctx, log, "initialise tracing", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		fatal(ctx, log, "open catalog database", err)
	}
	defer store.Close()

	app := &app{
		store:          store,
		log:            log,
		facilitiesPath: *facilitiesPath,
		ephemerisPath:  *ephemerisPath,
		metricsAddr:    *metricsAddr,
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "import":
		err = app.importTargets(ctx, args)
	case "list":
		err = app.listTargets(ctx)
	case "show":
		err = app.showTarget(ctx, args)
	case "delete":
		err = app.deleteTarget(ctx, args)
	case "visibility":
		err = app.visibility(ctx, args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fatal(ctx, log, cmd, err)
	}
}

func fatal(ctx context.Context, log logging.Logger, what string, err error) {
	log.Error(ctx, what+" failed", logging.String("error", err.Error()))
	os.Exit(1)
}

type app struct {
	store          *sqlite.Store
	log            logging.Logger
	facilitiesPath string
	ephemerisPath  string
	metricsAddr    string
}

func (a *app) importTargets(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <targets.json>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var targets []model.Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	for _, t := range targets {
		fillGalactic(&t)
		saved, err := a.store.UpsertTarget(ctx, t)
		if err != nil {
			return fmt.Errorf("target %q: %w", t.Identifier, err)
		}
		a.log.Info(ctx, "target stored",
			logging.String("identifier", saved.Identifier),
			logging.String("type", string(saved.Type)),
			logging.String("id", saved.ID))
	}
	return nil
}

// fillGalactic derives galactic coordinates from RA/Dec when the catalog
// entry does not carry them.
func fillGalactic(t *model.Target) {
	s := t.Sidereal
	if t.Type != model.TargetTypeSidereal || s == nil || s.RA == nil || s.Dec == nil {
		return
	}
	if s.GalacticLng != nil || s.GalacticLat != nil {
		return
	}
	lng, lat := core.Galactic(*s.RA, *s.Dec)
	s.GalacticLng = model.Float64(lng)
	s.GalacticLat = model.Float64(lat)
}

func (a *app) listTargets(ctx context.Context) error {
	targets, err := a.store.ListTargets(ctx)
	if err != nil {
		return err
	}
	for _, t := range targets {
		fmt.Printf("%-24s %-14s %s\n", t.Identifier, t.Type, t.Name)
	}
	return nil
}

func (a *app) showTarget(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <identifier>")
	}
	t, err := a.store.GetTargetByIdentifier(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(t)
}

func (a *app) deleteTarget(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <identifier>")
	}
	t, err := a.store.GetTargetByIdentifier(ctx, args[0])
	if err != nil {
		return err
	}
	return a.store.DeleteTarget(ctx, t.ID)
}

func (a *app) visibility(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("visibility", flag.ExitOnError)
	startStr := fs.String("start", "", "window start (RFC3339)")
	endStr := fs.String("end", "", "window end (RFC3339, default start+1h)")
	interval := fs.Int("interval", 10, "sampling interval in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: visibility <identifier> -start <RFC3339>")
	}
	if *startStr == "" {
		return fmt.Errorf("-start is required")
	}
	start, err := time.Parse(time.RFC3339, *startStr)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	end := start.Add(time.Hour)
	if *endStr != "" {
		if end, err = time.Parse(time.RFC3339, *endStr); err != nil {
			return fmt.Errorf("parse -end: %w", err)
		}
	}

	target, err := a.store.GetTargetByIdentifier(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	registry, err := a.loadFacilities()
	if err != nil {
		return err
	}
	table, err := a.loadEphemeris(ctx)
	if err != nil {
		return err
	}

	calc := core.NewCalculator(table, registry, a.log)
	metricsSrv := a.serveMetrics(ctx, calc)

	res, err := calc.Visibility(ctx, &target, start, end, *interval)
	if err != nil {
		return err
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return printJSON(res)
}

func (a *app) loadFacilities() (*facility.Registry, error) {
	if a.facilitiesPath == "" {
		return nil, fmt.Errorf("-facilities is required for visibility computations")
	}
	return facility.LoadRegistryFile(a.facilitiesPath)
}

func (a *app) loadEphemeris(ctx context.Context) (*ephem.Table, error) {
	if a.ephemerisPath == "" {
		return ephem.Default()
	}
	table, err := ephem.LoadFile(a.ephemerisPath)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "loaded ephemeris table",
		logging.String("path", a.ephemerisPath),
		logging.Int("bodies", table.Len()))
	return table, nil
}

func (a *app) serveMetrics(ctx context.Context, calc *core.Calculator) *http.Server {
	if a.metricsAddr == "" {
		return nil
	}
	collector, err := observability.NewVisibilityCollector(nil)
	if err != nil {
		a.log.Warn(ctx, "metrics collector unavailable", logging.String("error", err.Error()))
		return nil
	}
	calc.WithMetrics(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: a.metricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	a.log.Info(ctx, "serving Prometheus metrics", logging.String("addr", a.metricsAddr))
	return srv
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
