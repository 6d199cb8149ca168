package field

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Runtime tunables for the solver, loaded once at startup from the ini file.
// A missing file or key falls back to the reference values.
type Config struct {
	Downsample    int     // render pixels per grid cell
	DeltaT        float64 // simulated seconds advanced per Step
	CellSize      float64 // physical extent of one grid cell, meters
	PixelsPerInch float64 // render pixels per inch of bench space
	Workers       int     // row bands computed concurrently per Step
	PairPolicy    string  // interference pair scope: "all" | "adjacent"
}

var cfg = defaultConfig()

func defaultConfig() Config {
	return Config{
		Downsample:    4,
		DeltaT:        0.05,
		CellSize:      0.01,
		PixelsPerInch: 20,
		Workers:       4,
		PairPolicy:    "all",
	}
}

// LoadConfig reads the ini file at path into the package configuration.
// Stability is the caller's obligation: DeltaT, CellSize and Downsample must
// keep α·Δt/Δx² ≤ 0.25 for the stiffest material in the scene; the solver
// does not check this at runtime.
func LoadConfig(path string) {
	file, err := ini.Load(path)
	if err != nil {
		log.Warnf("config %s not readable, using defaults: %v", path, err)
		return
	}
	loadCfg(file)
	log.Infof("config loaded: downsample=%d deltaT=%gs cell=%gm workers=%d policy=%s",
		cfg.Downsample, cfg.DeltaT, cfg.CellSize, cfg.Workers, cfg.PairPolicy)
}

func loadCfg(file *ini.File) {
	cfg = Config{
		Downsample:    file.Section("field").Key("Downsample").MustInt(4),
		DeltaT:        file.Section("field").Key("DeltaT").MustFloat64(0.05),
		CellSize:      file.Section("field").Key("CellSize").MustFloat64(0.01),
		PixelsPerInch: file.Section("field").Key("PixelsPerInch").MustFloat64(20),
		Workers:       file.Section("field").Key("Workers").MustInt(4),
		PairPolicy:    file.Section("interference").Key("PairPolicy").MustString("all"),
	}
	if cfg.Downsample < 1 {
		cfg.Downsample = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
}

// Cfg returns the active configuration.
func Cfg() Config {
	return cfg
}
