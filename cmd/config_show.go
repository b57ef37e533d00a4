package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/secrets"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configShowProject bool
	configShowJSON    bool
)

func init() {
	configShowCmd.Flags().BoolVarP(&configShowProject, "project", "p", false, "show only the project configuration file")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowProject = false
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration envseal will use: defaults overlaid with the user
config and the nearest ` + configs.ProjectConfigName + `.

Use --project to show only the values set in the project file.

Examples:
  envseal config show
  envseal config show --project
  envseal config show --json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Flags: project=%t, json=%t", configShowProject, configShowJSON)

		paths, err := configs.ResolvePaths()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("failed to locate config files: %w", err)
		}

		var cfg *configs.Config
		if configShowProject {
			if paths.ProjectConfig == "" {
				ConfigLogger.Infof("No project config found")
				fmt.Println(ui.Error.Sprint("✗") + " No " + ui.Path.Sprint(configs.ProjectConfigName) + " found in this directory or its parents")
				fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envseal config init --project") + " to create one")
				return nil
			}
			cfg = &configs.Config{}
			if err := configs.LoadTOML(paths.ProjectConfig, cfg); err != nil {
				fmt.Println(formatVaultError(err))
				return reported(err)
			}
		} else {
			cfg, err = configs.Load(paths)
			if err != nil {
				fmt.Println(formatVaultError(err))
				return reported(err)
			}
		}

		if configShowJSON {
			output, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		printConfigText(paths, cfg)
		return nil
	},
}

func printConfigText(paths *configs.Paths, cfg *configs.Config) {
	source := func(path string) string {
		if path == "" {
			return ui.Muted.Sprint("none")
		}
		return ui.Path.Sprint(path)
	}

	if configShowProject {
		fmt.Println(ui.Info.Sprint("Project Configuration") + " (" + paths.ProjectConfig + "):")
	} else {
		fmt.Println(ui.Info.Sprint("Effective Configuration") + ":")
	}
	fmt.Println()

	fields := []ui.Field{{Label: "KDF mode", Value: ui.Highlight.Sprint(cfg.KDF.Mode)}}
	if params, err := cfg.KDFParams(); err == nil && params.Mode == secrets.ModePBKDF2 {
		fields = append(fields, ui.Field{Label: "Iterations", Value: strconv.Itoa(secrets.PBKDF2Iterations) + " " + ui.Muted.Sprint("fixed")})
	}
	fields = append(fields,
		ui.Field{Label: "Suffix", Value: cfg.Output.Suffix},
		ui.Field{Label: "Keep source", Value: strconv.FormatBool(cfg.Seal.KeepSource)},
		ui.Field{Label: "Audit", Value: strconv.FormatBool(cfg.Audit.Enabled)},
		ui.Field{Label: "Audit log", Value: source(cfg.Audit.Path)},
	)
	fmt.Print(ui.Fields(fields))

	if !configShowProject {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Sources") + ":")
		fmt.Print(ui.Fields([]ui.Field{
			{Label: "User", Value: source(paths.UserConfig)},
			{Label: "Project", Value: source(paths.ProjectConfig)},
		}))
	}
}
