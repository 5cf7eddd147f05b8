// Command spectraldump writes per-resonance CSV tables of the
// mass-dependent total width and the normalized spectral function.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/resonance/catalog"
	"github.com/pthm-cable/resonance/decay"
	"github.com/pthm-cable/resonance/particle"
)

// Row is one sampled point of a resonance line shape.
type Row struct {
	Mass     float64 `csv:"mass"`
	Width    float64 `csv:"total_width"`
	Spectral float64 `csv:"spectral_function"`
}

func main() {
	var (
		particlesPath = flag.String("particles", "", "particle catalogue YAML (default: embedded)")
		modesPath     = flag.String("decaymodes", "", "decay modes file (default: embedded)")
		outDir        = flag.String("out", "spectral", "output directory")
		step          = flag.Float64("step", 0.02, "mass step [GeV]")
		verbose       = flag.Bool("v", false, "log construction diagnostics")
	)
	flag.Parse()

	if *verbose {
		decay.SetLogWriter(os.Stderr)
	}

	list, lines, err := loadInputs(*particlesPath, *modesPath)
	if err != nil {
		fatal(err)
	}
	db, err := decay.NewDatabase(list, lines)
	if err != nil {
		fatal(err)
	}
	db.Precompute()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fatal(fmt.Errorf("creating output directory: %w", err))
	}
	for _, sp := range list.All() {
		if sp.IsStable() {
			continue
		}
		path := filepath.Join(*outDir, fmt.Sprintf("spectral_%d.csv", sp.PDG()))
		if err := writeSpectral(db, sp, *step, path); err != nil {
			fatal(err)
		}
		fmt.Printf("%s -> %s\n", sp.Name(), path)
	}
}

func loadInputs(particlesPath, modesPath string) (*particle.List, []decay.Line, error) {
	if particlesPath == "" && modesPath == "" {
		return catalog.Default()
	}
	if particlesPath == "" || modesPath == "" {
		return nil, nil, fmt.Errorf("-particles and -decaymodes must be given together")
	}
	list, err := catalog.LoadParticles(particlesPath)
	if err != nil {
		return nil, nil, err
	}
	lines, err := catalog.LoadModeLines(modesPath)
	if err != nil {
		return nil, nil, err
	}
	return list, lines, nil
}

// writeSpectral tabulates one resonance from its spectral minimum mass
// upward. The cutoff assumes the spectral function decays at high mass,
// which holds for all known resonances.
func writeSpectral(db *decay.Database, sp *particle.Type, step float64, path string) error {
	const spectralThreshold = 8e-3

	// Rightmost pole-mass sum of any decay mode bounds the interesting
	// mass region.
	rightmostPole := 0.0
	for _, b := range db.Table(sp).Branches() {
		sum := 0.0
		for _, d := range b.Type().Daughters() {
			sum += d.Mass()
		}
		if sum > rightmostPole {
			rightmostPole = sum
		}
	}

	var rows []Row
	mMin := db.MinMassSpectral(sp)
	for i := 0; ; i++ {
		m := mMin + step*float64(i)
		sf := db.SpectralFunction(sp, m)
		if m > 2*rightmostPole && sf < spectralThreshold {
			break
		}
		rows = append(rows, Row{Mass: m, Width: db.TotalWidth(sp, m), Spectral: sf})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "spectraldump:", err)
	os.Exit(1)
}
