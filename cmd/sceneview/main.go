package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scenegraph/internal/engine"
	"scenegraph/internal/scenefile"
	"scenegraph/internal/viewer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	config   string
	scene    string
	width    int32
	height   int32
	noGPU    bool
	noReload bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "sceneview [scene]",
		Short:        "View and edit scene files",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("config") {
				dir, err := bundleDir(executableDir(), &opts, args)
				if err != nil {
					return err
				}
				if dir != "" {
					if err := os.Chdir(dir); err != nil {
						return err
					}
				}
			}
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			return viewer.New(cfg, log).Run()
		},
	}

	bindFlags(root, &opts)
	root.AddCommand(newConvertCmd(), newInspectCmd(), newNewScriptCmd())
	return root
}

func bindFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "viewer.toml", "viewer config file")
	f.StringVar(&opts.scene, "scene", "", "scene file to open")
	f.Int32Var(&opts.width, "width", 0, "window width")
	f.Int32Var(&opts.height, "height", 0, "window height")
	f.BoolVar(&opts.noGPU, "no-gpu", false, "compute bounds on the CPU")
	f.BoolVar(&opts.noReload, "no-reload", false, "do not watch the scene file")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
}

// executableDir is the directory of the running binary, or "" under
// "go run", which builds into a temp directory.
func executableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	dir := filepath.Dir(execPath)
	if strings.Contains(dir, "go-build") {
		return ""
	}
	return dir
}

// bundleDir returns execDir when the default config is missing from the
// working directory but ships next to the binary, so the viewer can run
// from there. Scene paths from the command line are made absolute first.
// It returns "" when no directory change is needed.
func bundleDir(execDir string, opts *options, args []string) (string, error) {
	if execDir == "" {
		return "", nil
	}
	if _, err := os.Stat(opts.config); err == nil {
		return "", nil
	}
	if _, err := os.Stat(filepath.Join(execDir, opts.config)); err != nil {
		return "", nil
	}
	if opts.scene != "" {
		abs, err := filepath.Abs(opts.scene)
		if err != nil {
			return "", err
		}
		opts.scene = abs
	}
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", err
		}
		args[i] = abs
	}
	return execDir, nil
}

// resolveConfig loads the config file and applies explicitly set flags on
// top of it.
func resolveConfig(cmd *cobra.Command, opts options, args []string) (viewer.Config, error) {
	cfg, err := viewer.LoadConfig(opts.config)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Scene = opts.scene
	}
	if len(args) == 1 {
		cfg.Scene = args[0]
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if opts.noGPU {
		cfg.GPUBounds = false
	}
	if opts.noReload {
		cfg.HotReload = false
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, cfg viewer.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log, nil
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a scene file between JSON and YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := convert(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d objects)\n", args[1], scenefile.FormatFromPath(args[1]), n)
			return nil
		},
	}
}

func convert(in, out string) (int, error) {
	scene, err := scenefile.Load(in)
	if err != nil {
		return 0, err
	}
	if err := scenefile.Save(scene, out); err != nil {
		return 0, err
	}
	return scene.Len(), nil
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Print the hierarchy with world positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), scene)
		},
	}
}

func inspect(w io.Writer, scene *engine.Scene) error {
	depth := map[engine.ObjectID]int{}
	var walkErr error
	scene.Walk(func(o *engine.SceneObject) bool {
		d := 0
		if p, err := scene.Parent(o.ID()); err == nil && p != nil {
			d = depth[p.ID()] + 1
		}
		depth[o.ID()] = d

		pos, err := scene.WorldPosition(o.ID())
		if err != nil {
			walkErr = err
			return false
		}
		var kinds []string
		for _, c := range o.Components() {
			kinds = append(kinds, c.Kind().String())
		}
		line := fmt.Sprintf("%s%s (%.2f, %.2f, %.2f)", strings.Repeat("  ", d), o.Name, pos.X, pos.Y, pos.Z)
		if len(kinds) > 0 {
			line += " [" + strings.Join(kinds, ", ") + "]"
		}
		if !o.Enabled {
			line += " disabled"
		}
		fmt.Fprintln(w, line)
		return true
	})
	return walkErr
}
