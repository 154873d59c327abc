// Command ui-stress builds a large generated widget tree and runs frames
// against it for a fixed duration, then prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/ooui/config"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
	"github.com/sirupsen/logrus"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	depth := flag.Int("depth", 4, "Nesting depth of the generated tree.")
	fanout := flag.Int("fanout", 6, "Children per row in the generated tree.")
	sliderEvery := flag.Int("slider-every", 5, "Make every n-th leaf a slider (0 disables sliders).")
	configPath := flag.String("config", config.FileName, "Path to the YAML config file.")
	profileMode := flag.String("profile", "", "Write a profile: cpu, mem or empty for none.")
	profileDir := flag.String("profile-dir", ".", "Directory for profile output.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ui-stress: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	stop, err := startProfile(*profileMode, *profileDir)
	if err != nil {
		log.WithError(err).Fatal("invalid profile mode")
	}
	defer stop()

	shape := treeShape{Depth: *depth, Fanout: *fanout, SliderEvery: *sliderEvery}
	report, err := run(cfg, log, shape, *duration)
	if err != nil {
		log.WithError(err).Fatal("stress run failed")
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

func startProfile(mode, dir string) (func(), error) {
	var p interface{ Stop() }
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook)
	case "mem":
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath(dir), profile.NoShutdownHook)
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return p.Stop, nil
}

// run builds the tree and runs frames until duration elapses. Each frame
// drags one slider to a random position.
func run(cfg *config.Config, log logrus.FieldLogger, shape treeShape, duration time.Duration) (*Report, error) {
	gen := generate(shape)

	m := widget.NewManager(&render.Recorder{}, nil, cfg)
	m.SetLogger(log)

	log.WithFields(logrus.Fields{"depth": shape.Depth, "fanout": shape.Fanout}).Info("building tree")
	if err := m.Root(gen.Root); err != nil {
		return nil, err
	}

	report := &Report{
		Duration: duration,
		Shape:    shape,
		Entities: m.Storage().Len(),
		Sliders:  len(gen.Sliders),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("entities", report.Entities).Infof("running frames for %s", duration)
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	rng := rand.New(rand.NewSource(1))
	startTime := time.Now()
	lastFrameTime := startTime

	for ctx.Err() == nil {
		if len(gen.Sliders) > 0 {
			s := gen.Sliders[int(report.TotalFrames)%len(gen.Sliders)].Handle()
			if thumb := s.Thumb(); thumb != ecs.NoEntity {
				if err := widgets.SetPressed(m.Storage(), thumb, true); err != nil {
					return nil, err
				}
				s.Move(rng.Float64() * float64(cfg.Window.Width))
			}
		}

		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		frameStart := time.Now()
		if err := m.Run(deltaTime.Seconds()); err != nil {
			return nil, err
		}
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		report.TotalFrames++
		report.Events += len(m.Events())
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	report.Scheduler = m.Scheduler().GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.WithField("frames", report.TotalFrames).Info("stress run finished")
	return report, nil
}
