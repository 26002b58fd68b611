package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/careerline/careerline/internal/api"
	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"github.com/careerline/careerline/internal/nav"
	"github.com/careerline/careerline/internal/pipeline"
	"github.com/careerline/careerline/internal/router"
	"github.com/careerline/careerline/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "careerline",
	Short: "Headless client for the careerline careers platform",
	Long: `Careerline is a client for the careerline careers platform.
It restores the stored session on startup, keeps the access token fresh
behind a single request pipeline and exposes the job, page, profile and
application APIs to embedding shells.`,
	RunE: runClient,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default config.yaml to the current directory",
	RunE:  runInitConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.Flags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
	rootCmd.AddCommand(initConfigCmd)
}

func runClient(cmd *cobra.Command, args []string) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.Load,
			func(c *config.Config) *config.APIConfig { return &c.API },
			func(c *config.Config) *config.LoggingConfig { return &c.Logging },
			func(c *config.Config) *config.StorageConfig { return &c.Storage },
			func(c *config.Config) *config.RoutesConfig { return &c.Routes },
		),
		fx.Invoke(func(cfg *config.LoggingConfig) error {
			return logger.InitLogger(cfg)
		}),
		nav.Module,
		session.Module,
		pipeline.Module,
		router.Module,
		api.Module,
		fx.Invoke(run),
	)

	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

// run hydrates the session on startup and reports where the client stands.
func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, auth *api.AuthClient, guard *router.Guard, manager *session.Manager, routes *config.RoutesConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				auth.Hydrate(context.Background())

				if manager.IsAuthenticated() {
					profile := manager.Profile()
					pterm.Success.Printfln("Signed in as %s %s <%s>",
						profile.FirstName, profile.LastName, profile.Email)
				} else {
					pterm.Info.Println("No active session, sign in to continue")
				}

				if decision := guard.Evaluate(routes.Landing); decision.Action == router.ActionRedirect {
					pterm.Info.Printfln("Continue at %s", decision.Target)
				} else {
					pterm.Info.Printfln("Continue at %s", routes.Landing)
				}

				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	const path = "config.yaml"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}

	out, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	pterm.Success.Printfln("Wrote default configuration to %s", path)
	return nil
}
