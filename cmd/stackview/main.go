// main.go bootstraps stackview: it builds the root Cobra command, binds
// flags to STACKVIEW_* environment variables and an optional config file, and
// lays out YAML scenes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := newRootCommand()
	err := rootCmd.Execute()
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	logLevel  string
	logFormat string
	noColor   bool

	offset  int
	spacing int
	width   int
	height  int
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{logLevel: "warn", logFormat: "text"}
	cmd := &cobra.Command{
		Use:           "stackview",
		Short:         "Lay out stacked scroll regions in a terminal",
		Long:          "stackview stacks child scroll regions into one scroll surface and shows the resulting frames, viewport and scroll arbitration for a YAML scene.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindViper(cmd.Root()); err != nil {
				return err
			}
			if opts.noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", opts.logFormat, "Log format (text, json)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.IntVar(&opts.offset, "offset", 0, "Outer scroll offset in rows, overrides the scene")
	flags.IntVar(&opts.spacing, "spacing", 0, "Rows between children, overrides the scene")
	flags.IntVar(&opts.width, "width", 0, "Viewport width in cells, overrides the scene")
	flags.IntVar(&opts.height, "height", 0, "Viewport height in rows, overrides the scene")

	cmd.AddCommand(
		newFramesCommand(opts),
		newRenderCommand(opts),
		newArbitrateCommand(opts),
	)
	cmd.Example = `  # Show where every child lands at offset 250
  stackview frames scene.yaml --offset 250

  # Draw the viewport
  stackview render scene.yaml --width 40 --height 12`
	return cmd
}

// bindViper fills every persistent flag the user did not pass from
// STACKVIEW_* environment variables or the STACKVIEW_CONFIG file. It runs
// once per execution of root, against root's own flag set.
func bindViper(root *cobra.Command) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("STACKVIEW")
	v.AutomaticEnv()

	flags := root.PersistentFlags()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	if configFile := os.Getenv("STACKVIEW_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		// Set through the flag set so overrides count as changed.
		if val := fmt.Sprintf("%v", v.Get(f.Name)); val != "" {
			if err := flags.Set(f.Name, val); err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}

func (o *globalOptions) logger(w io.Writer) (logger.Logger, error) {
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	typ, err := logger.ParseType(o.logFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Options{Buffer: w, Level: level, Type: typ}), nil
}

// loadBuilt reads the scene at path, applies flag overrides and builds it.
func (o *globalOptions) loadBuilt(cmd *cobra.Command, path string) (*built, *Scene, error) {
	scene, err := loadScene(path)
	if err != nil {
		return nil, nil, err
	}
	o.apply(cmd.Flags(), scene)
	log, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	b, err := scene.build(log)
	if err != nil {
		return nil, nil, err
	}
	return b, scene, nil
}

func (o *globalOptions) apply(flags *pflag.FlagSet, scene *Scene) {
	if flags.Changed("offset") {
		scene.Offset = o.offset
	}
	if flags.Changed("spacing") {
		scene.Spacing = o.spacing
	}
	if flags.Changed("width") {
		scene.Width = o.width
	}
	if flags.Changed("height") {
		scene.Height = o.height
	}
}

func newFramesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "frames <scene.yaml>",
		Short: "Print the frame of every child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := opts.loadBuilt(cmd, args[0])
			if err != nil {
				return err
			}
			printFrames(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func newRenderCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Draw the visible viewport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := opts.loadBuilt(cmd, args[0])
			if err != nil {
				return err
			}
			lines, _, err := b.view.Render()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintf(out, "|%s|\n", line)
			}
			return nil
		},
	}
}

func newArbitrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "arbitrate <scene.yaml>",
		Short: "Show which nested scroll regions may scroll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := opts.loadBuilt(cmd, args[0])
			if err != nil {
				return err
			}
			printArbitration(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func printFrames(w io.Writer, b *built) {
	res := b.view.Container().LayoutResult()
	header := color.New(color.Bold)
	collapsed := color.New(color.FgYellow)

	header.Fprintf(w, "%-16s %6s %6s %6s %6s\n", "CHILD", "Y", "HEIGHT", "WIDTH", "INNER")
	for _, f := range res.Frames {
		line := fmt.Sprintf("%-16s %6d %6d %6d %6d",
			b.names[f.Index], f.Rect.Origin.Y, f.Rect.Size.Height, f.Rect.Size.Width, f.ContentOffset)
		if f.IsCollapsed() {
			collapsed.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
	header.Fprintf(w, "content %dx%d\n", res.ContentSize.Width, res.ContentSize.Height)
}

func printArbitration(w io.Writer, b *built) {
	enabled := color.New(color.FgGreen)
	disabled := color.New(color.FgRed)

	color.New(color.Bold).Fprintf(w, "%-24s %-12s %-10s %s\n", "REGION", "OWNER", "AXIS", "SCROLL")
	for _, r := range b.regions {
		on, ok := b.view.Container().ScrollEnabled(r.scrollable)
		if !ok {
			continue
		}
		prefix := fmt.Sprintf("%-24s %-12s %-10s ", r.name, r.owner, arbiter.AxesOf(r.scrollable))
		if on {
			fmt.Fprint(w, prefix)
			enabled.Fprintln(w, "enabled")
			continue
		}
		fmt.Fprint(w, prefix)
		disabled.Fprintln(w, "disabled")
	}
}
