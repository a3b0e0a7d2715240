// spatialtool inspects meshes and runs geometric queries against them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/spatial3d/internal/config"
	"github.com/Faultbox/spatial3d/internal/logger"
	"github.com/Faultbox/spatial3d/pkg/math"
)

var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, config.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Run 'spatialtool help' for usage.")
		}
		stop()
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: spatialtool [flags] <command> <mesh> [args]", errUsage)
	}

	command := args[0]
	args = args[1:]
	logger.Log.Debug("running command", zap.String("command", command), zap.Strings("args", args))

	switch command {
	case "info":
		return cmdInfo(cfg, args, out)
	case "bounds":
		return cmdBounds(cfg, args, out)
	case "normals":
		return cmdNormals(cfg, args, out)
	case "transform":
		return cmdTransform(cfg, args, out)
	case "raycast", "ray":
		return cmdRaycast(ctx, cfg, args, out)
	case "closest":
		return cmdClosest(cfg, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `spatialtool - mesh inspection and geometric queries

Usage:
  spatialtool [flags] <command> <mesh> [args]

Commands:
  info <mesh>                                  Show topology, area and bounds
  bounds <mesh>                                Show the axis-aligned bounding box
  normals <mesh> [-faces]                      Print vertex (or face) normals
  transform <mesh> <out> [-axis x,y,z -angle rad -translate x,y,z]
                                               Move a mesh and save the result
  raycast <mesh> <ox,oy,oz> <dx,dy,dz> ...     Cast rays, closest hit per ray
  closest <mesh> <x,y,z> ...                   Closest surface point per query

Meshes are read from .obj, .stl and .yaml files.

Flags:
  -config <file>   Config file (default ./spatial3d.yaml)
  -debug           Enable debug logging
  -epsilon <e>     Tolerance for zero and equality tests
  -workers <n>     Concurrent ray casts (0 = one per CPU)
  -depth <n>       KD-tree depth bound
  -cull            Ignore back-facing triangles

Examples:
  spatialtool info bunny.obj
  spatialtool raycast cube.stl 0.5,0.5,-1 0,0,1
  spatialtool transform part.obj moved.obj -axis 0,0,1 -angle 1.5708 -translate 10,0,0`)
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("bad coordinate in %q: %w", s, err)
		}
		c[i] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
