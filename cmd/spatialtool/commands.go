package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spatial3d/internal/config"
	"github.com/Faultbox/spatial3d/internal/logger"
	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
	"github.com/Faultbox/spatial3d/pkg/meshio"
	"github.com/Faultbox/spatial3d/pkg/picking"
	"github.com/Faultbox/spatial3d/pkg/transform"
)

func loadMesh(cfg *config.Config, path string) (*mesh.Mesh, error) {
	start := time.Now()
	m, err := meshio.Load(path, mesh.WithTolerance(cfg.Tolerance()))
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", m.NumVertices()),
		zap.Int("faces", m.NumFaces()),
		zap.Duration("took", time.Since(start)))
	return m, nil
}

func cmdInfo(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: info <mesh>", errUsage)
	}
	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}

	var area float64
	degenerate := 0
	for i := 0; i < m.NumFaces(); i++ {
		a, err := m.FaceArea(i)
		if err != nil {
			return err
		}
		area += a
		if _, err := m.FaceNormal(i); err != nil {
			degenerate++
		}
	}

	fmt.Fprintf(out, "Mesh:       %s\n", m.Name())
	fmt.Fprintf(out, "Vertices:   %d\n", m.NumVertices())
	fmt.Fprintf(out, "Faces:      %d\n", m.NumFaces())
	fmt.Fprintf(out, "Triangles:  %d\n", len(m.Triangles()))
	fmt.Fprintf(out, "Edges:      %d\n", len(m.Edges()))
	fmt.Fprintf(out, "Degenerate: %d\n", degenerate)
	fmt.Fprintf(out, "Winding:    %s\n", windingLabel(m.ConsistentWinding()))
	fmt.Fprintf(out, "Area:       %.6g\n", area)
	fmt.Fprintf(out, "Normals:    %s\n", normalsLabel(m.HasNormals()))
	if box, err := m.Bounds(); err == nil {
		fmt.Fprintf(out, "Bounds:     %v\n", box)
	}
	return nil
}

func windingLabel(ok bool) string {
	if ok {
		return "consistent"
	}
	return "inconsistent"
}

func normalsLabel(supplied bool) string {
	if supplied {
		return "supplied"
	}
	return "computed"
}

func cmdBounds(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: bounds <mesh>", errUsage)
	}
	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}
	box, err := m.Bounds()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Min:    %v\n", box.Min)
	fmt.Fprintf(out, "Max:    %v\n", box.Max)
	fmt.Fprintf(out, "Center: %v\n", box.Center())
	fmt.Fprintf(out, "Size:   %v\n", box.Size())
	return nil
}

func cmdNormals(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: normals <mesh> [-faces]", errUsage)
	}
	fs := flag.NewFlagSet("normals", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	faces := fs.Bool("faces", false, "Print one normal per face")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}

	if *faces {
		for i := 0; i < m.NumFaces(); i++ {
			n, err := m.FaceNormal(i)
			if err != nil {
				fmt.Fprintf(out, "f %d: %v\n", i, err)
				continue
			}
			fmt.Fprintf(out, "f %d: %v\n", i, n)
		}
		return nil
	}

	for i := 0; i < m.NumVertices(); i++ {
		n, err := m.VertexNormal(i)
		if err != nil {
			fmt.Fprintf(out, "v %d: %v\n", i, err)
			continue
		}
		fmt.Fprintf(out, "v %d: %v\n", i, n)
	}
	return nil
}

func cmdTransform(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: transform <mesh> <out> [-axis x,y,z -angle rad -translate x,y,z]", errUsage)
	}
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	axisArg := fs.String("axis", "0,0,1", "Rotation axis")
	angle := fs.Float64("angle", 0, "Rotation angle in radians")
	translateArg := fs.String("translate", "0,0,0", "Translation applied after the rotation")
	if err := fs.Parse(args[2:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	axis, err := parseVec3(*axisArg)
	if err != nil {
		return err
	}
	offset, err := parseVec3(*translateArg)
	if err != nil {
		return err
	}
	place, err := transform.FromAxisAngleTranslation(axis, *angle, offset)
	if err != nil {
		return err
	}

	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}
	moved, err := m.Transform(place)
	if err != nil {
		return err
	}
	if err := meshio.Save(args[1], moved); err != nil {
		return err
	}

	box, err := moved.Bounds()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied %v\n", place)
	fmt.Fprintf(out, "Wrote %s (%d vertices, %d faces), bounds %v\n", args[1], moved.NumVertices(), moved.NumFaces(), box)
	return nil
}

func cmdRaycast(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 3 || (len(args)-1)%2 != 0 {
		return fmt.Errorf("%w: raycast <mesh> <ox,oy,oz> <dx,dy,dz> ...", errUsage)
	}

	var rays []picking.Ray
	for i := 1; i < len(args); i += 2 {
		origin, err := parseVec3(args[i])
		if err != nil {
			return err
		}
		dir, err := parseVec3(args[i+1])
		if err != nil {
			return err
		}
		r, err := picking.NewRay(origin, dir)
		if err != nil {
			return fmt.Errorf("ray %d: %w", len(rays), err)
		}
		rays = append(rays, r)
	}

	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}
	tree, err := picking.NewKDTree(m,
		picking.WithMaxDepth(cfg.Picking.KDTreeDepth),
		picking.WithOptions(cfg.RayOptions()),
		picking.WithLogger(logger.Named("picking")))
	if err != nil {
		return err
	}

	hits, err := picking.CastAll(ctx, tree, rays, cfg.Picking.Workers)
	if err != nil {
		return err
	}
	for i, h := range hits {
		if !h.OK {
			fmt.Fprintf(out, "ray %d: miss\n", i)
			continue
		}
		fmt.Fprintf(out, "ray %d: face %d t=%.6g point %v\n", i, h.Face, h.T, h.Point)
	}
	return nil
}

func cmdClosest(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: closest <mesh> <x,y,z> ...", errUsage)
	}

	points := make([]math.Vec3, 0, len(args)-1)
	for _, a := range args[1:] {
		p, err := parseVec3(a)
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	m, err := loadMesh(cfg, args[0])
	if err != nil {
		return err
	}
	for i, p := range points {
		n, err := picking.ClosestPoint(m, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "point %d: face %d distance %.6g at %v\n", i, n.Face, n.Distance, n.Point)
	}
	return nil
}
