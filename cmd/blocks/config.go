package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or print the configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the default configuration to path, or to ~/.blocks/blocks.yaml
when no path is given. Existing files are left alone unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, args []string) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		dir := config.UserDir()
		if dir == "" {
			fail(fmt.Errorf("cannot resolve home directory"))
		}
		path = filepath.Join(dir, "blocks.yaml")
	}

	if flagForce {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fail(err)
		}
	}
	if err := config.Write(path, config.Default()); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		fail(err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail(err)
	}
	fmt.Printf("# source: %s\n%s", src, out)
}
