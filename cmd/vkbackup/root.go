package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"vkbackup/pkg/auth"
	"vkbackup/pkg/config"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/ratelimit"
	"vkbackup/pkg/retry"
	"vkbackup/pkg/saver"
	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

var (
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	configFile  string
	logLevel    string
	logFile     string
	accountName string
	noLogo      bool
)

var rootCmd = &cobra.Command{
	Use:   "vkbackup",
	Short: "Back up VK photos to Yandex Disk",
	Long: `vkbackup copies the photos of a VK album to a folder on Yandex Disk.

For each photo the largest available size is picked and the file is named
after its like count. The disk downloads the files itself, so nothing is
stored locally except a small JSON manifest of what was uploaded.

Tokens are read from flags, VKBACKUP_* environment variables, the config
file or the credential store (see 'vkbackup auth login').`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.config/vkbackup/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "", "use a stored account")
	rootCmd.PersistentFlags().BoolVar(&noLogo, "no-logo", false, "do not print the banner")

	rootCmd.SetVersionTemplate(`vkbackup {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig merges every config source, fills missing tokens from the
// credential store and initialises the global logger.
func loadConfig(flags map[string]interface{}) (*config.Config, error) {
	if flags == nil {
		flags = map[string]interface{}{}
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialise logging: %w", err)
	}

	if cfg.VK.Token == "" || cfg.Disk.Token == "" {
		if account := storedAccount(); account != nil {
			applyAccount(cfg, account)
		}
	}
	return cfg, nil
}

// storedAccount returns the account named by --account, or the default one.
// Store errors only mean there is nothing to apply.
func storedAccount() *auth.Account {
	manager, err := auth.NewManager()
	if err != nil {
		logger.WithError(err).Debug("credential store unavailable")
		return nil
	}

	var account *auth.Account
	if accountName != "" {
		account, err = manager.Retrieve(accountName)
	} else {
		account, err = manager.RetrieveDefault()
	}
	if err != nil {
		logger.WithError(err).Debug("no stored credentials")
		return nil
	}
	return account
}

// applyAccount fills tokens that no other source provided
func applyAccount(cfg *config.Config, account *auth.Account) {
	if cfg.VK.Token == "" {
		cfg.VK.Token = account.VKToken
	}
	if cfg.VK.UserID == "" {
		cfg.VK.UserID = account.VKUserID
	}
	if cfg.Disk.Token == "" {
		cfg.Disk.Token = account.DiskToken
	}
}

func newVKClient(cfg *config.Config) (*vk.Client, error) {
	return vk.New(vk.Config{
		Token:      cfg.VK.Token,
		UserID:     cfg.VK.UserID,
		APIVersion: cfg.VK.APIVersion,
		BaseURL:    cfg.VK.BaseURL,
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.HTTP.Timeout,
	}, logger.GetLogger())
}

func newDiskClient(cfg *config.Config) (*yadisk.Client, error) {
	return yadisk.New(yadisk.Config{
		Token:     cfg.Disk.Token,
		BaseURL:   cfg.Disk.BaseURL,
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	}, logger.GetLogger(),
		yadisk.WithPoller(retry.NewPoller(cfg.Poll.BaseDelay, cfg.Poll.MaxDelay, logger.GetLogger())),
		yadisk.WithLimiter(ratelimit.NewFixedDelay(cfg.Transfer.RequestDelay)))
}

func newSaver(cfg *config.Config, source saver.PhotoSource, storage saver.Storage, opts ...saver.Option) (*saver.Saver, error) {
	base := []saver.Option{
		saver.WithLimiter(ratelimit.NewFixedDelay(cfg.Transfer.RequestDelay)),
		saver.WithPageCap(cfg.Transfer.PageCap),
		saver.WithListPageSize(cfg.Disk.PageSize),
		saver.WithLogger(logger.GetLogger()),
	}
	return saver.New(source, storage, append(base, opts...)...)
}
