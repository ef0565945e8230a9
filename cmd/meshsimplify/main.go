package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/nat-n/piper"
	"gopkg.in/yaml.v3"

	simplify "github.com/uniqlow/meshoptimizer"
	"github.com/uniqlow/meshoptimizer/internal/objio"
	"github.com/uniqlow/meshoptimizer/internal/tracelog"
)

// preset is a named, file-loadable bundle of simplify.Options, letting
// callers check a tuned configuration into version control instead of
// retyping arguments on every invocation.
type preset struct {
	TargetIndexCount int     `yaml:"target_index_count"`
	TargetError      float32 `yaml:"target_error"`
	GridSizing       string  `yaml:"grid_sizing"`
}

func loadPreset(path string) (preset, error) {
	var p preset
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	err = yaml.Unmarshal(data, &p)
	return p, err
}

func gridSizingFromString(s string) simplify.GridSizingMode {
	if s == "continuous" {
		return simplify.GridSizeContinuous
	}
	return simplify.GridSizeBinary
}

// openLogger builds a tracelog.Logger from the MESHSIMPLIFY_LOG_FILE
// environment variable, mirroring this repo's existing env-var-gated
// debug knob rather than inventing a new flag value convention.
func openLogger(verbose bool) (*tracelog.Logger, func()) {
	logger := tracelog.New(tracelog.Options{
		Path:    os.Getenv("MESHSIMPLIFY_LOG_FILE"),
		Console: verbose,
	})
	return logger, func() { _ = logger.Sync() }
}

func simplifyCmd(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	_, verbose := flags["verbose"]

	inputPath := args[0]
	outputPath := args[1]

	targetIndexCount, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("target index count: %w", err)
	}

	var targetError float64
	if len(args) > 3 {
		targetError, err = strconv.ParseFloat(args[3], 32)
		if err != nil {
			return nil, fmt.Errorf("target error: %w", err)
		}
	}

	mesh, err := objio.Read(inputPath)
	if err != nil {
		return nil, err
	}

	logger, closeLogger := openLogger(verbose)
	defer closeLogger()

	vertexCount := len(mesh.Positions) / 3
	positions := simplify.Positions{Data: mesh.Positions, Stride: 12}

	var stats simplify.Stats
	mesh.Indices, stats = simplify.SimplifyWithStats(mesh.Indices, positions, vertexCount, simplify.Options{
		TargetIndexCount: targetIndexCount,
		TargetError:      float32(targetError),
		Logger:           logger,
	}, nil)

	if err := objio.Write(outputPath, mesh); err != nil {
		return nil, err
	}

	if verbose {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d passes, %d edge collapses, %d indices remaining\n",
			green("simplify:"), stats.Passes, stats.EdgeCollapses, len(mesh.Indices))
	}

	return mesh, nil
}

func simplifySloppyCmd(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	_, verbose := flags["verbose"]

	inputPath := args[0]
	outputPath := args[1]

	targetIndexCount, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("target index count: %w", err)
	}

	gridSizing := simplify.GridSizeBinary
	if len(args) > 3 {
		gridSizing = gridSizingFromString(args[3])
	}

	mesh, err := objio.Read(inputPath)
	if err != nil {
		return nil, err
	}

	logger, closeLogger := openLogger(verbose)
	defer closeLogger()

	vertexCount := len(mesh.Positions) / 3
	positions := simplify.Positions{Data: mesh.Positions, Stride: 12}

	var stats simplify.Stats
	mesh.Indices, stats = simplify.SimplifySloppyWithStats(mesh.Indices, positions, vertexCount, simplify.Options{
		TargetIndexCount: targetIndexCount,
		GridSizing:       gridSizing,
		Logger:           logger,
	})

	if err := objio.Write(outputPath, mesh); err != nil {
		return nil, err
	}

	if verbose {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d cells, %d indices remaining\n", green("simplify-sloppy:"), stats.CellCount, len(mesh.Indices))
	}

	return mesh, nil
}

func simplifyPresetCmd(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	_, verbose := flags["verbose"]

	presetPath := args[0]
	inputPath := args[1]
	outputPath := args[2]

	p, err := loadPreset(presetPath)
	if err != nil {
		return nil, err
	}

	mesh, err := objio.Read(inputPath)
	if err != nil {
		return nil, err
	}

	logger, closeLogger := openLogger(verbose)
	defer closeLogger()

	vertexCount := len(mesh.Positions) / 3
	positions := simplify.Positions{Data: mesh.Positions, Stride: 12}

	opts := simplify.Options{
		TargetIndexCount: p.TargetIndexCount,
		TargetError:      p.TargetError,
		GridSizing:       gridSizingFromString(p.GridSizing),
		Logger:           logger,
	}

	var stats simplify.Stats
	if p.GridSizing != "" {
		mesh.Indices, stats = simplify.SimplifySloppyWithStats(mesh.Indices, positions, vertexCount, opts)
	} else {
		mesh.Indices, stats = simplify.SimplifyWithStats(mesh.Indices, positions, vertexCount, opts, nil)
	}

	if err := objio.Write(outputPath, mesh); err != nil {
		return nil, err
	}

	if verbose {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d indices remaining (cells=%d passes=%d)\n",
			green("simplify-preset:"), len(mesh.Indices), stats.CellCount, stats.Passes)
	}

	return mesh, nil
}

func inspectCmd(data interface{}, flags map[string]piper.Flag, args []string) (result interface{}, err error) {
	inputPath := args[0]

	mesh, err := objio.Read(inputPath)
	if err != nil {
		return nil, err
	}

	vertexCount := len(mesh.Positions) / 3
	positions := simplify.Positions{Data: mesh.Positions, Stride: 12}

	area := simplify.MeshArea(positions, mesh.Indices)

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("%s %d vertices, %d indices (%d triangles), surface area %.4f\n",
		cyan(inputPath), vertexCount, len(mesh.Indices), len(mesh.Indices)/3, area)

	return mesh, nil
}

func main() {
	cli := piper.CLIApp{
		Name:        "meshsimplify",
		Description: "reduces the triangle count of an indexed mesh",
	}

	cli.RegisterFlag(piper.Flag{
		Name:        "verbose",
		Symbol:      "v",
		Description: "print a summary after the command runs",
	})

	cli.RegisterCommand(piper.Command{
		Name:        "simplify",
		Description: "apply exact quadric-error edge-collapse simplification",
		Args:        []string{"input obj", "output obj", "target index count", "target error (optional)"},
		Task:        simplifyCmd,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "simplify-sloppy",
		Description: "apply fast spatial-hash clustering simplification",
		Args:        []string{"input obj", "output obj", "target index count", "grid sizing: binary|continuous (optional)"},
		Task:        simplifySloppyCmd,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "simplify-preset",
		Description: "apply simplification using options loaded from a yaml preset file",
		Args:        []string{"preset yaml", "input obj", "output obj"},
		Task:        simplifyPresetCmd,
	})

	cli.RegisterCommand(piper.Command{
		Name:        "inspect",
		Description: "print vertex/triangle counts and surface area for a mesh",
		Args:        []string{"input obj"},
		Task:        inspectCmd,
	})

	if err := cli.Run(); err != nil {
		fmt.Println(err)
		cli.PrintHelp()
		os.Exit(1)
	}
}
