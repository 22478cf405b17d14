package config

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/agbru/numcalc/internal/bigint"
)

// Karatsuba threshold resolution (highest priority first):
//   1. -karatsuba-threshold
//   2. NUMCALC_KARATSUBA_THRESHOLD
//   3. cached calibration profile (~/.numcalc_calibration.json)
//   4. hardware estimate (this file)
//   5. bigint.DefaultKaratsubaThreshold

// ApplyAdaptiveThresholds fills zero-valued tunables from hardware
// estimates, leaving explicit settings alone.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = EstimateOptimalConcurrency()
	}
	return cfg
}

// EstimateOptimalKaratsubaThreshold guesses the crossover without
// benchmarking. Limbs are 32-bit; wide multiply-add support makes the
// schoolbook inner loop cheaper and moves the crossover up.
func EstimateOptimalKaratsubaThreshold() int {
	switch {
	case cpu.X86.HasBMI2 && cpu.X86.HasADX:
		return 64
	case cpu.ARM64.HasASIMD:
		return 56
	case wordSize() == 32:
		return 32
	default:
		return bigint.DefaultKaratsubaThreshold
	}
}

// EstimateOptimalConcurrency bounds concurrent evaluations. Each evaluation
// is single-threaded, so one per core, leaving one core for the display on
// larger machines.
func EstimateOptimalConcurrency() int {
	n := runtime.NumCPU()
	if n > 4 {
		return n - 1
	}
	return n
}

func wordSize() int { return 32 << (^uint(0) >> 63) }
