package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vkbackup/pkg/auth"
	"vkbackup/pkg/config"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/ui"
	"vkbackup/pkg/vk"
)

var (
	authAppID     string
	authScope     string
	authSkipCheck bool
	authAll       bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored API tokens",
	Long: `Manage stored VK and Yandex Disk tokens.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (VKBACKUP_VK_TOKEN, VKBACKUP_DISK_TOKEN; read only)

Never share your tokens or config files!`,
}

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store a VK and a Yandex Disk token under a name",
	Long: `Store a pair of tokens securely. Both tokens are checked against
their APIs before they are saved unless --skip-check is given.`,
	Example: `  # Interactive login, showing the VK auth link for app 1234567
  vkbackup auth login home --app-id 1234567`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove stored tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogout,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts with masked tokens",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the VK authorization link",
	Long: `Print the browser link of the VK implicit flow. After allowing
access the browser lands on a blank page whose address carries
access_token=...`,
	Args: cobra.NoArgs,
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, logoutCmd, listCmd, linkCmd)

	loginCmd.Flags().StringVar(&authAppID, "app-id", "", "VK application id used to build the auth link")
	loginCmd.Flags().StringVar(&authScope, "scope", "", "VK permission scope (default from config)")
	loginCmd.Flags().BoolVar(&authSkipCheck, "skip-check", false, "store tokens without checking them")
	logoutCmd.Flags().BoolVar(&authAll, "all", false, "remove every stored account")
	linkCmd.Flags().StringVar(&authAppID, "app-id", "", "VK application id")
	linkCmd.Flags().StringVar(&authScope, "scope", "", "VK permission scope (default from config)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialise credential manager: %w", err)
	}

	appID, scope := linkParams(cfg)
	auth.WriteTokenGuide(ui.Output(), appID, scope)

	prompter := ui.NewPrompter(os.Stdin)
	name := "default"
	if len(args) > 0 {
		name = args[0]
	}

	account := &auth.Account{Name: name}
	if account.VKToken, err = prompter.AskSecret("VK token:"); err != nil {
		return err
	}
	if account.VKUserID, err = prompter.Ask("VK user ID (optional):"); err != nil {
		return err
	}
	if account.DiskToken, err = prompter.AskSecret("Yandex Disk token:"); err != nil {
		return err
	}

	if !authSkipCheck {
		if err := checkAccount(cfg, account); err != nil {
			return err
		}
	}

	if err := manager.Store(account); err != nil {
		return err
	}
	logger.WithField("account", name).Info("Credentials stored")
	ui.PrintSuccess(fmt.Sprintf("Stored tokens as %q", name))
	return nil
}

// checkAccount builds both clients with the new tokens; each client
// validates its token on creation.
func checkAccount(cfg *config.Config, account *auth.Account) error {
	probe := *cfg
	probe.VK.Token = account.VKToken
	probe.VK.UserID = account.VKUserID
	probe.Disk.Token = account.DiskToken

	vkClient, err := newVKClient(&probe)
	if err != nil {
		return err
	}
	ui.PrintInfo("VK user", vkClient.User().String())

	diskClient, err := newDiskClient(&probe)
	if err != nil {
		return err
	}
	ui.PrintInfo("Disk owner", diskClient.Owner())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialise credential manager: %w", err)
	}

	if authAll {
		if err := manager.DeleteAll(); err != nil {
			return err
		}
		ui.PrintSuccess("Removed all stored accounts")
		return nil
	}

	name := "default"
	if len(args) > 0 {
		name = args[0]
	}
	if err := manager.Delete(name); err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Removed %q", name))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialise credential manager: %w", err)
	}
	accounts, err := manager.List()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		ui.PrintWarning("No stored accounts. Run 'vkbackup auth login' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(ui.Output(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVK TOKEN\tVK USER\tDISK TOKEN\tMODIFIED")
	for _, account := range accounts {
		a := auth.SanitizeAccount(account)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.VKToken, a.VKUserID, a.DiskToken,
			a.LastModified.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runLink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	appID, scope := linkParams(cfg)
	if appID == "" {
		return fmt.Errorf("VK app id is required: pass --app-id or set vk.app_id")
	}
	fmt.Fprintln(ui.Output(), vk.AuthLink(appID, scope))
	return nil
}

func linkParams(cfg *config.Config) (string, string) {
	appID, scope := authAppID, authScope
	if appID == "" {
		appID = cfg.VK.AppID
	}
	if scope == "" {
		scope = cfg.VK.Scope
	}
	return appID, scope
}
