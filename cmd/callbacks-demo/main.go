package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glimte/callbacks-go/interceptors"
)

var (
	// Version information
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CALLBACKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "callbacks-demo",
		Short: "Run the callbacks examples",
		Long: `callbacks-demo runs small programs showing how callbacks attach to functions
and methods: pre and post callbacks, priorities, removal, exception handlers and
class-level callbacks. Every example prints what it should print before running.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildTime),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every call and callback registration")
	rootCmd.PersistentFlags().StringP("amqp-url", "u", "", "Publish call events to this RabbitMQ URL")
	rootCmd.PersistentFlags().String("exchange", interceptors.DefaultExchange, "Exchange call events are published to")
	rootCmd.PersistentFlags().Bool("trace", false, "Print an OpenTelemetry span per call to stderr")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print Prometheus call metrics to stderr when done")
	_ = v.BindPFlags(rootCmd.PersistentFlags())

	setup := func(cmd *cobra.Command) (*demoEnv, func(), error) {
		return newDemoEnv(cmd, v)
	}

	for _, ex := range examples {
		rootCmd.AddCommand(exampleCmd(ex, setup))
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every example in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			for i, ex := range examples {
				if i > 0 {
					fmt.Fprintln(env.out)
				}
				fmt.Fprintf(env.out, "== %s\n", ex.name)
				if err := ex.run(env); err != nil {
					return fmt.Errorf("example %s: %w", ex.name, err)
				}
			}
			return nil
		},
	}
	rootCmd.AddCommand(allCmd)

	return rootCmd
}

func exampleCmd(ex example, setup func(*cobra.Command) (*demoEnv, func(), error)) *cobra.Command {
	return &cobra.Command{
		Use:   ex.name,
		Short: ex.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return ex.run(env)
		},
	}
}

