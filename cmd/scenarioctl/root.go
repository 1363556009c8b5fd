package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/config"
	"github.com/kbukum/scenariokit/definition"
	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/logger"
	"github.com/kbukum/scenariokit/observability"
	"github.com/kbukum/scenariokit/pipeline"
	"github.com/kbukum/scenariokit/scenario"
	"github.com/kbukum/scenariokit/version"
)

const serviceName = "scenarioctl"

// skipConfig marks commands that run without loading application config.
const skipConfig = "scenarioctl/skip-config"

// app carries state shared by every subcommand for one invocation.
type app struct {
	cfgFile      string
	policy       string
	definitions  []string
	pipelineDirs []string
	logLevel     string

	cfg   *config.AppConfig
	log   *logger.Logger
	meter *sdkmetric.MeterProvider
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Validate and inspect scenario definitions",
		Long:          `scenarioctl loads YAML pipeline and scenario definitions, resolves their references and reports the resulting configuration registries.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./scenarioctl.yml or ./config.yml)")
	flags.StringVar(&a.policy, "duplicate-policy", "", "how duplicate scenario names are handled: overwrite, reject or versioned")
	flags.StringSliceVarP(&a.definitions, "file", "f", nil, "definition documents to load (repeatable)")
	flags.StringSliceVar(&a.pipelineDirs, "pipeline-dir", nil, "directories searched for undeclared pipelines")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newValidateCmd(a),
		newListCmd(a),
		newProtectCmd(),
		newComparatorsCmd(),
		newVersionCmd(),
	)
	return root
}

// init loads configuration, applies flag overrides and sets up logging and
// metrics.
func (a *app) init(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.cfgFile != "" {
		opts = append(opts, config.WithConfigFile(a.cfgFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("duplicate-policy") {
		cfg.Registry.DuplicatePolicy = a.policy
	}
	if flags.Changed("file") {
		cfg.Definitions = a.definitions
	}
	if flags.Changed("pipeline-dir") {
		cfg.PipelineDirs = a.pipelineDirs
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.NewWithWriter(&cfg.Logging, cmd.ErrOrStderr())
	logger.SetGlobalLogger(a.log)

	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(cmd.Context(), cfg.MeterConfig())
		if err != nil {
			return errors.Internal(err).WithDetail("endpoint", cfg.Metrics.Endpoint)
		}
		a.meter = mp
	}
	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.meter == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.meter.Shutdown(ctx)
}

// build loads the given documents, or the configured ones when paths is
// empty, into fresh registries.
func (a *app) build(paths []string) (*definition.Builder, error) {
	if len(paths) == 0 {
		paths = a.cfg.Definitions
	}
	if len(paths) == 0 {
		return nil, errors.MissingField("definitions")
	}

	doc, err := definition.LoadAll(paths...)
	if err != nil {
		return nil, err
	}

	policy, err := a.cfg.Registry.Policy()
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewRegistryMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, errors.Internal(err)
	}

	opts := []definition.Option{
		definition.WithLogger(a.log.WithComponent("definition")),
		definition.WithCatalog(comparator.DefaultCatalog()),
		definition.WithScenarioRegistry(scenario.NewRegistry(
			scenario.WithDuplicatePolicy(policy),
			scenario.WithLogger(a.log.WithComponent("scenario.registry")),
			scenario.WithMetrics(metrics),
		)),
	}
	if len(a.cfg.PipelineDirs) > 0 {
		opts = append(opts, definition.WithLoader(pipeline.NewFileLoader(a.cfg.PipelineDirs...)))
	}

	b := definition.NewBuilder(opts...)
	if err := b.Build(doc); err != nil {
		return nil, err
	}
	return b, nil
}
