// gcodegen computes the toolpath for a rectangular box and writes it
// as G-code consumable by printer firmware or slicer visualizers.
//
// Usage:
//
//	gcodegen [-config box.cfg] [-o generated_box.gcode] [options]
//
// Options:
//
//	-config string  Process configuration file (optional; built-in defaults otherwise)
//	-o string       Output G-code file (default "generated_box.gcode")
//	-trace          Enable debug tracing
//	-json-log       Log in JSON format
//
// Examples:
//
//	# 50mm cube with the built-in defaults
//	gcodegen
//
//	# Custom box from a config file
//	gcodegen -config box.cfg -o box.gcode
package main

import (
	"flag"
	"fmt"
	"os"

	"gcodegen-go-migration/pkg/config"
	"gcodegen-go-migration/pkg/gcode"
	"gcodegen-go-migration/pkg/log"
	"gcodegen-go-migration/pkg/toolpath"
)

func main() {
	configFile := flag.String("config", "", "Process configuration file (optional)")
	output := flag.String("o", "generated_box.gcode", "Output G-code file")
	trace := flag.Bool("trace", false, "Enable debug tracing")
	jsonLog := flag.Bool("json-log", false, "Log in JSON format")
	flag.Parse()

	logger := log.Default()
	if *trace {
		logger.SetLevel(log.DEBUG)
	}
	if *jsonLog {
		logger.SetFormat(log.FormatJSON)
	}

	cfg := config.Default()
	if *configFile != "" {
		parsed, err := config.Load(*configFile)
		if err != nil {
			logger.Error("failed to load config: %v", err)
			os.Exit(1)
		}
		cfg, err = config.LoadProcess(parsed)
		if err != nil {
			logger.Error("invalid configuration: %v", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, *output, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.ProcessConfig, output string, logger *log.Logger) error {
	seq, err := toolpath.NewSequencer(cfg)
	if err != nil {
		return err
	}
	program, summary, err := seq.Run()
	if err != nil {
		return err
	}

	bed, err := cfg.Placement()
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", output, err)
	}
	defer f.Close()

	if err := gcode.Write(f, cfg, bed, program); err != nil {
		return err
	}

	logger.InfoFields("g-code generated", log.Fields{
		"output":     output,
		"dimensions": fmt.Sprintf("%gx%gx%g mm", cfg.Length, cfg.Width, cfg.Height),
		"layers":     summary.NumLayers,
		"final_e":    fmt.Sprintf("%.2f mm", summary.FinalE),
	})
	return nil
}
