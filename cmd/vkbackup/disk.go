package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vkbackup/pkg/ui"
	"vkbackup/pkg/yadisk"
)

var diskYes bool

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Inspect and manage files on Yandex Disk",
}

var diskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every file on the disk with its size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, pageSize, err := diskClient()
		if err != nil {
			return err
		}
		files := client.ListFiles(pageSize)
		ui.PrintList(files.Object)
		if !files.Success() {
			return fmt.Errorf("listing incomplete: %s", files.Message)
		}
		return nil
	},
}

var diskInfoCmd = &cobra.Command{
	Use:   "info [path]",
	Short: "Show a file or folder, or the disk summary without a path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := diskClient()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			info, err := client.DiskInfo().Unwrap()
			if err != nil {
				return err
			}
			ui.PrintInfo("Owner", info.User.DisplayName)
			ui.PrintInfo("Used", yadisk.FormatSize(info.UsedSpace))
			ui.PrintInfo("Total", yadisk.FormatSize(info.TotalSpace))
			ui.PrintInfo("Trash", yadisk.FormatSize(info.TrashSize))
			return nil
		}

		res, err := client.FileInfo(args[0]).Unwrap()
		if err != nil {
			return err
		}
		ui.PrintInfo("Path", yadisk.DisplayPath(res.Path))
		ui.PrintInfo("Type", res.Type)
		if !res.IsDir() {
			ui.PrintInfo("Size", yadisk.FormatSize(res.Size))
			ui.PrintInfo("MIME type", res.MimeType)
		}
		if !res.Modified.IsZero() {
			ui.PrintInfo("Modified", res.Modified.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var diskMkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := diskClient()
		if err != nil {
			return err
		}
		env := client.CreateFolder(args[0])
		if yadisk.IsConflict(env) {
			ui.PrintWarning(fmt.Sprintf("Folder %s already exists", args[0]))
			return nil
		}
		if err := env.Error(); err != nil {
			return err
		}
		ui.PrintSuccess("Created " + args[0])
		return nil
	},
}

var diskDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Permanently delete a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := diskClient()
		if err != nil {
			return err
		}
		if !diskYes {
			ok, err := ui.NewPrompter(os.Stdin).Confirm(fmt.Sprintf("Delete %s permanently?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintWarning("Skipped")
				return nil
			}
		}
		if err := client.DeleteFile(args[0]).Error(); err != nil {
			return err
		}
		ui.PrintSuccess("Deleted " + args[0])
		return nil
	},
}

var diskUploadCmd = &cobra.Command{
	Use:   "upload <file> [folder]",
	Short: "Upload a local file, replacing any file with the same name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := diskClient()
		if err != nil {
			return err
		}
		folder := ""
		if len(args) > 1 {
			folder = args[1]
		}
		if err := client.UploadLocalFile(args[0], folder).Error(); err != nil {
			return err
		}
		ui.PrintSuccess("Uploaded " + args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diskCmd)
	diskCmd.AddCommand(diskListCmd, diskInfoCmd, diskMkdirCmd, diskDeleteCmd, diskUploadCmd)
	diskDeleteCmd.Flags().BoolVarP(&diskYes, "yes", "y", false, "do not ask for confirmation")
}

func diskClient() (*yadisk.Client, int, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, 0, err
	}
	if cfg.Disk.Token == "" {
		return nil, 0, fmt.Errorf("Yandex Disk token is required")
	}
	client, err := newDiskClient(cfg)
	if err != nil {
		return nil, 0, err
	}
	return client, cfg.Disk.PageSize, nil
}
