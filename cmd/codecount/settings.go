package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/codecount/internal/config"
	"github.com/phyten/codecount/internal/engine"
	engineopts "github.com/phyten/codecount/internal/engine/opts"
	"github.com/phyten/codecount/internal/lang"
	"github.com/phyten/codecount/internal/termcolor"
)

// settings is the fully layered configuration of one invocation:
// defaults < config file < CODECOUNT_* env < flags.
type settings struct {
	file   config.Config
	engine config.EngineSettings
	output config.OutputSettings
	opts   engine.Options
}

func (a *app) loadSettings(target string, flagEngine config.EngineConfig, flagOutput config.OutputConfig) (*settings, error) {
	explicit := a.configPath
	if explicit == "" {
		explicit = a.getenv("CODECOUNT_CONFIG")
	}
	path, source, err := config.Find(target, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return nil, fmt.Errorf("find config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		a.logger.Debug("config loaded", "path", path, "source", source)
	}
	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if a.color != "" {
		color := a.color
		flagOutput.Color = &color
	}

	opts := engineopts.Defaults(target)
	eng := config.MergeEngine(config.EngineSettingsFromOptions(opts), fileCfg.Engine, envCfg.Engine, flagEngine)
	out := config.MergeOutput(config.DefaultOutputSettings(), fileCfg.Output, envCfg.Output, flagOutput)
	out, err = config.NormalizeOutput(out)
	if err != nil {
		return nil, err
	}

	eng.ApplyToOptions(&opts)
	out.ApplyOutputDir(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return nil, err
	}
	return &settings{file: fileCfg, engine: eng, output: out, opts: opts}, nil
}

// registry builds the language table: built-ins, then harvested extension
// manifests, then the config file's own definitions.
func (a *app) registry(s *settings) (*lang.Registry, error) {
	b := lang.NewBuilder().Add(lang.Builtin()...)
	if len(s.engine.ExtensionDirs) > 0 {
		harvested, err := lang.HarvestExtensions(s.engine.ExtensionDirs...)
		if err != nil {
			a.logger.Warn("extension manifests skipped", "err", err)
		}
		a.logger.Debug("harvested languages", "count", len(harvested))
		b.Add(harvested...)
	}
	reg, err := s.file.ApplyLanguages(b).Build()
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	return reg, nil
}

// outputDir resolves the configured directory against the target.
func (s *settings) outputDir() string {
	dir := s.output.OutputDir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.opts.TargetDir, dir)
}

func (a *app) painter(colorMode string) (termcolor.Painter, error) {
	env := termcolor.EnvMap(a.environ())
	f, _ := a.stdout.(*os.File)
	enabled, err := termcolor.Resolve(colorMode, f, env)
	if err != nil {
		return termcolor.Painter{}, err
	}
	palette := termcolor.NewPalette(termcolor.DetectProfile(env), termcolor.DetectScheme(env))
	return termcolor.Painter{Palette: palette, Enabled: enabled}, nil
}

func changedString(cmd *cobra.Command, name string, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	trimmed := strings.TrimSpace(v)
	return &trimmed
}

func changedBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedList(cmd *cobra.Command, name string, v []string) *[]string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	list := engineopts.SplitMulti(v)
	if list == nil {
		list = []string{}
	}
	return &list
}
