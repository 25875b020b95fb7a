package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
)

var vkCmd = &cobra.Command{
	Use:   "vk",
	Short: "Query the VK account behind the token",
}

var vkStatusCmd = &cobra.Command{
	Use:   "status [user]",
	Short: "Print the status text of a user (yourself by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := vkClient()
		if err != nil {
			return err
		}
		userID := ""
		if len(args) > 0 {
			userID = args[0]
		}
		status, err := client.GetUserStatus(userID).Unwrap()
		if err != nil {
			return err
		}
		ui.PrintInfo("Status", status)
		return nil
	},
}

var vkFriendsCmd = &cobra.Command{
	Use:   "friends <user>",
	Short: "List the friends you share with another user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := vkClient()
		if err != nil {
			return err
		}
		users, err := client.CommonFriends(args[0]).Unwrap()
		if err != nil {
			return err
		}
		ui.PrintHighlight(fmt.Sprintf("Common friends with %s:", args[0]))
		ui.PrintList(userLines(users))
		return nil
	},
}

var vkUsersCmd = &cobra.Command{
	Use:   "users <id>...",
	Short: "Look up users by id or screen name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := vkClient()
		if err != nil {
			return err
		}
		users, err := client.GetUsers(args, []string{"domain"}).Unwrap()
		if err != nil {
			return err
		}
		ui.PrintList(userLines(users))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vkCmd)
	vkCmd.AddCommand(vkStatusCmd, vkFriendsCmd, vkUsersCmd)
}

func vkClient() (*vk.Client, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, err
	}
	if cfg.VK.Token == "" {
		return nil, fmt.Errorf("VK token is required")
	}
	return newVKClient(cfg)
}

func userLines(users []vk.User) []string {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		line := u.String()
		if u.Domain != "" {
			line += " vk.com/" + u.Domain
		}
		lines = append(lines, line)
	}
	return lines
}
