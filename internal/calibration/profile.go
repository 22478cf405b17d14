package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"
)

const (
	// CurrentProfileVersion changes whenever the profile layout or the
	// meaning of a stored threshold changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is stored in the user's home directory.
	DefaultProfileFileName = ".numcalc_calibration.json"
)

// CalibrationProfile records a measured Karatsuba crossover together with
// the machine fingerprint it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CPUFeatures    string    `json:"cpu_features"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	// OptimalKaratsubaThreshold is in 32-bit limbs.
	OptimalKaratsubaThreshold int    `json:"optimal_karatsuba_threshold"`
	CalibrationOperandLimbs   []int  `json:"calibration_operand_limbs"`
	CalibrationTime           string `json:"calibration_time"`
}

// NewProfile returns a profile fingerprinting the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    cpuFeatures(),
		CalibratedAt:   time.Now(),
	}
}

// cpuFeatures lists the features that change multiplication speed.
func cpuFeatures() string {
	var f []string
	for _, feat := range []struct {
		name string
		on   bool
	}{
		{"bmi2", cpu.X86.HasBMI2},
		{"adx", cpu.X86.HasADX},
		{"avx2", cpu.X86.HasAVX2},
		{"asimd", cpu.ARM64.HasASIMD},
	} {
		if feat.on {
			f = append(f, feat.name)
		}
	}
	return strings.Join(f, ",")
}

// IsValid reports whether p was measured on an equivalent machine with the
// current profile layout. A nil profile is invalid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.CPUFeatures == cpuFeatures()
}

// IsStale reports whether p is older than maxAge. A nil profile is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	features := p.CPUFeatures
	if features == "" {
		features = "none"
	}
	return fmt.Sprintf("calibration profile v%d: %s/%s, %d CPUs, features %s, Karatsuba threshold %d limbs, calibrated %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, features,
		p.OptimalKaratsubaThreshold, p.CalibratedAt.Format(time.RFC3339))
}

// SaveProfile writes p as indented JSON, creating parent directories.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one when
// it is missing or unreadable. loaded reports which happened.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	if p, err := loadProfile(path); err == nil {
		return p, true
	}
	return NewProfile(), false
}

// GetDefaultProfilePath returns ~/DefaultProfileFileName, falling back to
// the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

func resolveProfilePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}
