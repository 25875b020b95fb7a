package auth

import (
	"fmt"
	"io"
	"strings"

	"vkbackup/pkg/vk"
	"vkbackup/pkg/yadisk"
)

// WriteTokenGuide explains how to obtain both tokens. With an empty appID
// the VK link cannot be built and the guide asks for one instead.
func WriteTokenGuide(w io.Writer, appID, scope string) {
	rule := strings.Repeat("=", 72)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "🔑 GETTING API TOKENS")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 1: VK access token")
	if appID == "" {
		fmt.Fprintln(w, "   - Register a standalone app at https://vk.com/apps?act=manage")
		fmt.Fprintln(w, "   - Run this command again with --app-id <your app id>")
	} else {
		fmt.Fprintln(w, "   - Open this link in a browser and allow access:")
		fmt.Fprintf(w, "     %s\n", vk.AuthLink(appID, scope))
		fmt.Fprintln(w, "   - You will land on a blank page; copy access_token=... from its address")
		fmt.Fprintln(w, "     (everything between access_token= and the next &)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 2: Yandex Disk OAuth token")
	fmt.Fprintf(w, "   - Open %s and press \"Get OAuth token\"\n", yadisk.PollingPage)
	fmt.Fprintln(w, "   - Copy the token shown on the page")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "⚠️  Both tokens give access to your accounts. They are stored encrypted")
	fmt.Fprintln(w, "   or in the system keychain and never written to logs.")
	fmt.Fprintln(w, rule)
}
