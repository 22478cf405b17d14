package calibration

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/agbru/numcalc/internal/config"
)

// GenerateKaratsubaThresholds returns the candidate crossovers, in limbs, for
// a full calibration. Machines with wide multiply-add instructions get
// larger candidates since their schoolbook loop stays competitive longer.
func GenerateKaratsubaThresholds() []int {
	thresholds := []int{8, 16, 24, 32, 40, 48, 64, 80, 96}
	if cpu.X86.HasBMI2 || cpu.ARM64.HasASIMD {
		thresholds = append(thresholds, 128, 160)
	}
	return thresholds
}

// GenerateQuickKaratsubaThresholds brackets the hardware estimate for the
// startup calibration.
func GenerateQuickKaratsubaThresholds() []int {
	est := config.EstimateOptimalKaratsubaThreshold()
	return []int{est / 2, est, est * 2}
}

// OperandLimbs returns the operand sizes benchmarked by a full calibration.
// The largest size keeps a single multiplication in the millisecond range.
func OperandLimbs() []int {
	if runtime.NumCPU() == 1 {
		return []int{256, 1024}
	}
	return []int{256, 1024, 4096}
}

// QuickOperandLimbs returns the operand sizes of a startup calibration.
func QuickOperandLimbs() []int { return []int{512} }

// benchConcurrency bounds concurrently benchmarked candidates. Each
// multiplication is single-threaded; half the cores keeps memory bandwidth
// contention from skewing the comparison.
func benchConcurrency() int {
	return max(1, runtime.NumCPU()/2)
}
