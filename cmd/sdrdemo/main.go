// Command sdrdemo renders mask rasters from a TOML scene description and
// writes them out as grayscale PNGs.
//
// With no -config flag it renders a built-in scene demonstrating every
// mask kind.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	sdr "github.com/Aemi-Studio/AemiSDR"
	"github.com/Aemi-Studio/AemiSDR/gpu"
)

// scene is the TOML file layout: a list of named masks.
type scene struct {
	Mask []maskSpec
}

// maskSpec describes one mask in the scene file.
type maskSpec struct {
	Name         string
	Kind         string
	Width        float64
	Height       float64
	Scale        float64
	CornerRadius float64 `toml:"corner_radius"`
	Exponent     float64
	FadeWidth    float64 `toml:"fade_width"`
	PlateauWidth float64 `toml:"plateau_width"`
	Offset       float64
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML scene file (optional)")
		outDir     = flag.String("out", ".", "output directory")
		useGPU     = flag.Bool("gpu", false, "generate on the GPU when available")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		sdr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	sc := defaultScene()
	if *configPath != "" {
		sc = readScene(*configPath)
	}

	var opts []sdr.EngineOption
	if *useGPU {
		accel := gpu.NewAccelerator()
		if err := accel.Init(); err != nil {
			log.Printf("GPU unavailable, staying on CPU: %v", err)
		}
		defer accel.Close()
		opts = append(opts, sdr.WithGenerator(accel))
	}
	engine := sdr.NewEngine(opts...)

	for _, m := range sc.Mask {
		cfg, err := m.config()
		if err != nil {
			log.Fatalf("Mask %q: %v", m.Name, err)
		}
		raster, err := engine.Mask(cfg)
		if err != nil {
			log.Fatalf("Mask %q: %v", m.Name, err)
		}
		path := filepath.Join(*outDir, m.Name+".png")
		if err := writePNG(path, raster); err != nil {
			log.Fatalf("Mask %q: %v", m.Name, err)
		}
		log.Printf("Wrote %s (%dx%d)", path, raster.Width(), raster.Height())
	}

	stats := engine.Stats()
	log.Printf("Cache: %d rasters, %d hits, %d misses", stats.Len, stats.Hits, stats.Misses)
}

// config converts a scene entry into an engine configuration.
func (m maskSpec) config() (sdr.Config, error) {
	kind, err := parseKind(m.Kind)
	if err != nil {
		return sdr.Config{}, err
	}
	return sdr.Config{
		Kind:   kind,
		Width:  m.Width,
		Height: m.Height,
		Scale:  m.Scale,
		Shape: sdr.ShapeParams{
			CornerRadius: m.CornerRadius,
			Exponent:     m.Exponent,
			FadeWidth:    m.FadeWidth,
			PlateauWidth: m.PlateauWidth,
			Offset:       m.Offset,
		},
	}, nil
}

// parseKind maps the scene-file kind names onto the MaskKind enumeration.
func parseKind(name string) (sdr.MaskKind, error) {
	for k := sdr.KindLinearTopBottom; k <= sdr.KindEasedSuperellipse; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown mask kind %q", name)
}

func readScene(path string) scene {
	var sc scene
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		log.Fatalf("Couldn't read scene file: %v", err)
	}
	if len(sc.Mask) == 0 {
		log.Fatalf("Scene file %s defines no masks", path)
	}
	return sc
}

func writePNG(path string, r *sdr.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, r.ToImage())
}

// defaultScene exercises every mask kind at a common size.
func defaultScene() scene {
	kinds := []sdr.MaskKind{
		sdr.KindLinearTopBottom,
		sdr.KindLinearBottomTop,
		sdr.KindEasedLinear,
		sdr.KindRoundedRect,
		sdr.KindEasedRoundedRect,
		sdr.KindSuperellipse,
		sdr.KindEasedSuperellipse,
	}
	sc := scene{}
	for _, k := range kinds {
		sc.Mask = append(sc.Mask, maskSpec{
			Name:         k.String(),
			Kind:         k.String(),
			Width:        320,
			Height:       240,
			Scale:        1,
			CornerRadius: 32,
			Exponent:     4,
			FadeWidth:    48,
			PlateauWidth: 8,
			Offset:       0.25,
		})
	}
	return sc
}
