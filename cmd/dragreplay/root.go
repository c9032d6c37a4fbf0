package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/phanxgames/draggable"
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"threshold":    "threshold",
	"release_mode": "release_mode",
	"width":        "width",
	"height":       "height",
	"follow":       "follow",
	"bounds_attr":  "bounds_attr",
	"log.file":     "log-file",
}

type rootFlags struct {
	configFile string
	htmlFile   string
	scriptFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dragreplay",
		Short: "Replay a scripted drag gesture against an HTML fixture.",
		Long: `dragreplay loads an HTML fixture whose elements carry their bounds in an
attribute, drives a JSON gesture script through the drag engine, and prints
every dragStart, dragMove and dragStop as a JSON line.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for key, name := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, f.configFile)
			if err != nil {
				return err
			}
			var console io.Writer
			if f.verbose {
				console = cmd.ErrOrStderr()
			}
			logger, closeLog, err := newLogger(cfg.Log, console)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer closeLog()
			return replay(cmd.OutOrStdout(), cfg, f.htmlFile, f.scriptFile, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringVar(&f.htmlFile, "html", "", "HTML fixture")
	flags.StringVar(&f.scriptFile, "script", "", "JSON gesture script")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log engine transitions to stderr")
	flags.Float64("threshold", 0, "per-axis move threshold in pixels (0 = default)")
	flags.String("release_mode", "faithful", `when dragStop fires: "faithful" or "after-drag"`)
	flags.Float64("width", 1024, "viewport width")
	flags.Float64("height", 768, "viewport height")
	flags.Bool("follow", true, "move the placeholder to each reported point")
	flags.String("bounds_attr", "data-bounds", "attribute holding element bounds")
	flags.String("log-file", "", "also write JSON logs to this file, rotated by size")
	_ = cmd.MarkFlagRequired("html")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func replay(out io.Writer, cfg config, htmlFile, scriptFile string, logger *zap.Logger) error {
	fh, err := os.Open(htmlFile)
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer fh.Close()
	doc, err := draggable.ParseDocument(fh, cfg.BoundsAttr, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := draggable.LoadTestScript(data)
	if err != nil {
		return err
	}

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	r := &replayer{
		doc:           doc,
		enc:           json.NewEncoder(out),
		follow:        cfg.Follow,
		draggableAttr: draggable.DatasetAttr(cfg.DraggableDataAttr),
		placeholderID: cfg.PlaceholderID,
	}
	opts.Document = doc
	opts.Logger = logger
	opts.On = r.callbacks()

	engine, err := draggable.New(opts)
	if err != nil {
		return err
	}
	src := draggable.NewInjectSource()
	if err := engine.Attach(src); err != nil {
		return err
	}
	defer engine.Detach()

	runner.OnMark = r.mark
	ticks := runner.Run(src, doc)
	logger.Debug("replay finished", zap.Int("ticks", ticks))
	return r.err
}
