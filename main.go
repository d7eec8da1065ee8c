// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signal18/biasedurn/config"
	"github.com/signal18/biasedurn/fnchyp"
	"github.com/signal18/biasedurn/utils/s18log"
)

var (
	// Version is the semantic version number, e.g. 1.0.1
	Version string
	// FullVersion is the semantic version number + git commit hash
	FullVersion string
	// Build is the build date of biasedurn
	Build    string
	conf     config.Config
	cfgFile  string
	fileHook *s18log.RotateFileHook
)

func init() {

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	rootCmd.AddCommand(versionCmd)
	defaults := config.Default()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default is /etc/biasedurn/config.toml or ./config.toml)")
	rootCmd.PersistentFlags().BoolVar(&conf.Verbose, "verbose", false, "Print detailed execution info")
	rootCmd.PersistentFlags().Float64Var(&conf.Accuracy, "accuracy", defaults.Accuracy, "Accuracy of the sums, between 0 and 1")
	rootCmd.PersistentFlags().Float64Var(&conf.Cutoff, "cutoff", defaults.Cutoff, "Table tail cutoff relative to the mode, negative for accuracy/100")
	rootCmd.PersistentFlags().IntVar(&conf.TableLength, "table-length", defaults.TableLength, "Table buffer length, 0 for the length needed")
	rootCmd.PersistentFlags().StringVar(&conf.Output, "output", defaults.Output, "Output format: text or json")
	initLogFlags(rootCmd)

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initLogFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.PersistentFlags().StringVar(&conf.LogFile, "log-file", "", "Write output messages to log file")
	cmd.PersistentFlags().IntVar(&conf.LogRotateMaxSize, "log-rotate-max-size", defaults.LogRotateMaxSize, "Log rotate max size")
	cmd.PersistentFlags().IntVar(&conf.LogRotateMaxBackup, "log-rotate-max-backup", defaults.LogRotateMaxBackup, "Log rotate max backup")
	cmd.PersistentFlags().IntVar(&conf.LogRotateMaxAge, "log-rotate-max-age", defaults.LogRotateMaxAge, "Log rotate max age")
	cmd.PersistentFlags().IntVar(&conf.LogLevel, "log-level", defaults.LogLevel, "Log verbosity level. Default 3 (INFO)")
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("biasedurn failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps engine error kinds to distinct exit statuses.
func exitCode(err error) int {
	cause := errors.Cause(err)
	switch {
	case fnchyp.IsInvalidParameter(cause), fnchyp.IsInvalidArgument(cause):
		return 2
	case fnchyp.IsNoConvergence(cause):
		return 3
	}
	return 1
}

func initConfig() error {
	v := viper.GetViper()
	v.SetConfigType("toml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/biasedurn/")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("BIASEDURN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return errors.Annotate(err, "reading config")
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("Using config file")
	}
	var err error
	conf, err = config.Load(v)
	if err != nil {
		return errors.Annotate(err, "loading config")
	}
	return initLog()
}

func initLog() error {
	log.SetLevel(conf.LogrusLevel())
	if conf.LogFile == "" {
		return nil
	}
	hook, err := s18log.NewRotateFileHook(s18log.RotateFileConfig{
		Filename:   conf.LogFile,
		MaxSize:    conf.LogRotateMaxSize,
		MaxBackups: conf.LogRotateMaxBackup,
		MaxAge:     conf.LogRotateMaxAge,
		Level:      log.GetLevel(),
		Formatter: &log.TextFormatter{
			DisableColors:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		},
	})
	if err != nil {
		return errors.Annotate(err, "can't init log file")
	}
	log.AddHook(hook)
	fileHook = hook
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "biasedurn",
	Short: "Fisher's noncentral hypergeometric distribution calculator",
	Long: `biasedurn computes probabilities, moments and tables of Fisher's noncentral
hypergeometric distribution, for two colors (univariate) or up to 32 colors
(multivariate).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if fileHook != nil {
			fileHook.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Usage()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the biasedurn version number",
	Long:  `All software has versions. This is ours`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("biasedurn " + Version)
		fmt.Println("Full Version: ", FullVersion)
		fmt.Println("Build Time: ", Build)
	},
}
