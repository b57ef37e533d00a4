package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitProject bool
	configInitForce   bool
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitProject, "project", "p", false, "write "+configs.ProjectConfigName+" in the current directory")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitProject = false
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Writes the default settings to the user config file, or with --project to
` + configs.ProjectConfigName + ` in the current directory. An existing file is left alone
unless --force is given.

Examples:
  envseal config init
  envseal config init --project
  envseal config init --force`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		path, err := configInitPath()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("failed to locate config file: %w", err)
		}
		ConfigLogger.Debugf("Target config file: %s", path)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			ConfigLogger.Infof("Config file already exists, not overwriting")
			fmt.Println(ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(path) + " already exists")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envseal config show") + " to view it, or pass " + ui.Flag.Sprint("--force") + " to reset it")
			return nil
		}

		if err := configs.SaveTOML(path, configs.Default()); err != nil {
			return ConfigLogger.ErrorfAndReturn("failed to write config: %w", err)
		}

		ConfigLogger.Infof("Wrote default configuration")
		fmt.Println(ui.Success.Sprint("✓") + " Wrote default configuration to " + ui.Path.Sprint(path))
		return nil
	},
}

func configInitPath() (string, error) {
	if configInitProject {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, configs.ProjectConfigName), nil
	}

	paths, err := configs.ResolvePaths()
	if err != nil {
		return "", err
	}
	return paths.UserConfig, nil
}
