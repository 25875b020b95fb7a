package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/saver"
	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

var (
	runVKToken   string
	runDiskToken string
	runUser      string
	runFolder    string
	runAlbum     string
	runMax       int
	runManifest  string
	runYes       bool
	runKeep      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Copy VK photos to a Yandex Disk folder",
	Long: `Copy up to --max photos of a VK album into a Yandex Disk folder.

The run goes through these stages:
  Starting     check both tokens
  Heating      show the VK status, offer to delete an existing folder
  Downloading  collect photo links, largest size first
  Uploading    ask the disk to fetch each photo, then upload the manifest
  Checking     list the files on the disk

Missing tokens are asked for interactively when stdin is a terminal.`,
	Example: `  # Back up 10 profile photos of the token owner
  vkbackup run

  # Back up 50 wall photos of another user into "friends/ivan"
  vkbackup run --user 1 --album wall --max 50 --folder friends/ivan

  # Replace an existing folder without asking
  vkbackup run --yes`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runVKToken, "vk-token", "", "VK access token")
	runCmd.Flags().StringVar(&runDiskToken, "disk-token", "", "Yandex Disk OAuth token")
	runCmd.Flags().StringVarP(&runUser, "user", "u", "", "VK user id (default: token owner)")
	runCmd.Flags().StringVarP(&runFolder, "folder", "f", "", "target folder on the disk")
	runCmd.Flags().StringVar(&runAlbum, "album", "", "album: wall, profile or saved")
	runCmd.Flags().IntVarP(&runMax, "max", "n", 0, "maximum number of photos")
	runCmd.Flags().StringVar(&runManifest, "manifest", "", "local path of the JSON manifest")
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "delete an existing target folder without asking")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "keep an existing target folder without asking")
}

func runFlags() map[string]interface{} {
	return map[string]interface{}{
		"vk-token":   runVKToken,
		"disk-token": runDiskToken,
		"user":       runUser,
		"folder":     runFolder,
		"album":      runAlbum,
		"max":        runMax,
		"manifest":   runManifest,
	}
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runFlags())
	if err != nil {
		return err
	}

	if !noLogo {
		ui.PrintLogo()
	}

	prompter := ui.NewPrompter(os.Stdin)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		if err := askMissingTokens(cfg, prompter); err != nil {
			return err
		}
	}
	if err := cfg.RequireTokens(); err != nil {
		return err
	}

	ui.PrintSuccess("Seems that everything is ready. Let's go!")
	ui.Section("Starting")

	vkClient, err := newVKClient(cfg)
	if err != nil {
		ui.PrintError("Can't continue. I interrupt the run!")
		return err
	}
	ui.PrintInfo("VK user", vkClient.User().String())

	diskClient, err := newDiskClient(cfg)
	if err != nil {
		ui.PrintError("Can't continue. I interrupt the run!")
		return err
	}
	ui.PrintInfo("Disk owner", diskClient.Owner())

	s, err := newSaver(cfg, vkClient, diskClient, saver.WithStageHook(ui.Section))
	if err != nil {
		return err
	}
	logger.WithField("run_id", s.RunID()).Info("Backup started")

	result := s.Backup(saver.Plan{
		UserID:        cfg.VK.UserID,
		Album:         cfg.Transfer.Album,
		Folder:        cfg.Transfer.Folder,
		MaxImages:     cfg.Transfer.MaxImages,
		ManifestPath:  cfg.Transfer.ManifestFile,
		ConfirmDelete: deleteDecision(prompter, interactive),
	})

	report := result.Object
	if report.Status != "" {
		ui.PrintInfo("VK status", report.Status)
	}
	ui.PrintInfo("Uploaded", fmt.Sprintf("%d of %d", len(report.Uploaded), report.Found))
	ui.PrintList(report.Listing)

	ui.Section("Finishing")
	if !result.Success() {
		if errs.IsRemote(result.Err.Type) {
			ui.PrintWarning("The remote service rejected a request. Files already uploaded were kept.")
		}
		return fmt.Errorf("backup incomplete: %s", result.Message)
	}
	ui.PrintSuccess(fmt.Sprintf("Done: %s", report))
	return nil
}

// askMissingTokens mirrors the first-run flow: show the VK auth link when
// an app id is known, then ask for each missing token and the user id.
func askMissingTokens(cfg *config.Config, p *ui.Prompter) error {
	if cfg.VK.Token == "" {
		appID := cfg.VK.AppID
		if appID == "" {
			var err error
			appID, err = p.AskRequired("VK token was not set. Input your APP ID to show the auth URL:")
			if err != nil {
				return err
			}
		}
		ui.PrintInfo("Use this link in a browser to get a VK token", vk.AuthLink(appID, cfg.VK.Scope))

		token, err := p.AskSecret("VK token:")
		if err != nil {
			return err
		}
		cfg.VK.Token = token

		if cfg.VK.UserID == "" {
			id, err := p.Ask("VK user ID (press Enter to use the token owner):")
			if err != nil {
				return err
			}
			cfg.VK.UserID = id
		}
	}

	if cfg.Disk.Token == "" {
		ui.PrintInfo("Yandex Disk token was not set. You can take it here", yadisk.PollingPage)
		token, err := p.AskSecret("Yandex Disk token:")
		if err != nil {
			return err
		}
		cfg.Disk.Token = token
	}
	return nil
}

// deleteDecision turns the --yes/--keep flags and terminal state into the
// saver's delete confirmation.
func deleteDecision(p *ui.Prompter, interactive bool) func(string) bool {
	switch {
	case runYes:
		return func(string) bool { return true }
	case runKeep || !interactive:
		return func(string) bool { return false }
	}
	return func(path string) bool {
		ok, err := p.Confirm(fmt.Sprintf("Target folder %q exists, would you like to delete it (otherwise files will be duplicated)?", path))
		if err != nil {
			logger.WithError(err).Warn("confirmation aborted")
			return false
		}
		return ok
	}
}
