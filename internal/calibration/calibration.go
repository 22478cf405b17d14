// Package calibration measures the schoolbook/Karatsuba crossover of the
// current machine and caches it in a JSON profile.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/numcalc/internal/bigint"
	"github.com/agbru/numcalc/internal/config"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/logging"
)

const (
	// benchRepetitions is how often each product is timed; the minimum wins.
	benchRepetitions = 3
	// profileMaxAge bounds how long a cached profile is trusted.
	profileMaxAge = 30 * 24 * time.Hour
	// quickTimeout bounds a startup calibration.
	quickTimeout = 5 * time.Second
)

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Options selects what a calibration run measures.
type Options struct {
	Thresholds   []int
	OperandLimbs []int
	Seed         uint64
}

// Measure times x*y for every candidate threshold over random operands of
// each size and returns the per-candidate total, sorted by threshold.
// Candidates run concurrently; operands are shared and read-only.
func Measure(ctx context.Context, opts Options) ([]calibrationResult, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	type operands struct{ x, y *bigint.UBigInt }
	pairs := make([]operands, len(opts.OperandLimbs))
	for i, n := range opts.OperandLimbs {
		pairs[i] = operands{randomUBigInt(rng, n), randomUBigInt(rng, n)}
	}

	thresholds := slices.Clone(opts.Thresholds)
	slices.Sort(thresholds)
	thresholds = slices.Compact(thresholds)
	results := make([]calibrationResult, len(thresholds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(benchConcurrency())
	for i, th := range thresholds {
		g.Go(func() error {
			var total time.Duration
			for _, p := range pairs {
				best := time.Duration(-1)
				for r := 0; r < benchRepetitions; r++ {
					if err := gctx.Err(); err != nil {
						results[i] = calibrationResult{Threshold: th, Err: err}
						return err
					}
					start := time.Now()
					bigint.MulWithThreshold(p.x, p.y, th)
					if d := time.Since(start); best < 0 || d < best {
						best = d
					}
				}
				total += best
			}
			results[i] = calibrationResult{Threshold: th, Duration: total}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func randomUBigInt(rng *rand.Rand, limbs int) *bigint.UBigInt {
	l := make([]uint32, limbs)
	for i := range l {
		l[i] = rng.Uint32()
	}
	l[limbs-1] |= 1 << 31
	return bigint.UBigIntFromLimbs(l)
}

// bestThreshold returns the fastest successful candidate, preferring the
// smaller threshold on ties. ok is false when every candidate failed.
func bestThreshold(results []calibrationResult) (threshold int, ok bool) {
	var best *calibrationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if best == nil || r.Duration < best.Duration {
			best = r
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Threshold, true
}

// RunCalibration performs a full calibration, prints a summary, stores the
// profile at profilePath (default location when empty) and returns an exit
// code.
func RunCalibration(ctx context.Context, out io.Writer, profilePath string, logger logging.Logger) int {
	opts := Options{
		Thresholds:   GenerateKaratsubaThresholds(),
		OperandLimbs: OperandLimbs(),
		Seed:         uint64(time.Now().UnixNano()),
	}
	fmt.Fprintf(out, "Calibrating Karatsuba threshold: %d candidates, operands of %v limbs...\n", len(opts.Thresholds), opts.OperandLimbs)

	start := time.Now()
	results, err := Measure(ctx, opts)
	if err != nil {
		logger.Error("calibration interrupted", err)
		return apperrors.HandleCalculationError(err, time.Since(start), out, nil)
	}
	best, ok := bestThreshold(results)
	if !ok {
		fmt.Fprintln(out, "Calibration failed: no candidate completed.")
		return apperrors.ExitErrorGeneric
	}
	printCalibrationResults(out, results, best)

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = best
	profile.CalibrationOperandLimbs = opts.OperandLimbs
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	path := resolveProfilePath(profilePath)
	if err := profile.SaveProfile(path); err != nil {
		logger.Error("saving calibration profile", err, logging.String("path", path))
		fmt.Fprintf(out, "Warning: profile not saved: %v\n", err)
	} else {
		logger.Info("calibration profile saved", logging.String("path", path), logging.Int("threshold", best))
		fmt.Fprintf(out, "Profile saved to %s\n", path)
	}
	bigint.SetKaratsubaThreshold(best)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick calibration bounded by a short timeout and, on
// success, returns cfg with the measured threshold.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) (config.AppConfig, bool) {
	ctx, cancel := context.WithTimeout(ctx, quickTimeout)
	defer cancel()

	opts := Options{
		Thresholds:   GenerateQuickKaratsubaThresholds(),
		OperandLimbs: QuickOperandLimbs(),
		Seed:         uint64(time.Now().UnixNano()),
	}
	results, err := Measure(ctx, opts)
	if err != nil {
		logger.Debug("auto-calibration skipped", logging.Err(err))
		return cfg, false
	}
	best, ok := bestThreshold(results)
	if !ok {
		return cfg, false
	}
	cfg.KaratsubaThreshold = best
	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = best
	profile.CalibrationOperandLimbs = opts.OperandLimbs
	if err := profile.SaveProfile(resolveProfilePath(cfg.CalibrationProfile)); err != nil {
		logger.Debug("auto-calibration profile not saved", logging.Err(err))
	}
	if !cfg.Quiet {
		printCalibrationOutput(cfg, out)
	}
	return cfg, true
}

// LoadCachedCalibration applies a valid, fresh profile from path to cfg
// when cfg has no explicit threshold.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.KaratsubaThreshold != 0 {
		return cfg, false
	}
	profile, err := loadProfile(resolveProfilePath(path))
	if err != nil || !profile.IsValid() || profile.IsStale(profileMaxAge) || profile.OptimalKaratsubaThreshold < bigint.MinKaratsubaThreshold {
		return cfg, false
	}
	cfg.KaratsubaThreshold = profile.OptimalKaratsubaThreshold
	return cfg, true
}
