package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/mtamaki/cloud-cost-viewer/pkg/version"
)

// displayWelcomeBanner shows the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
          ____          _    __     ___
         / ___|___  ___| |_  \ \   / (_) _____      _____ _ __
        | |   / _ \/ __| __|  \ \ / /| |/ _ \ \ /\ / / _ \ '__|
        | |__| (_) \__ \ |_    \ V / | |  __/\ V  V /  __/ |
         \____\___/|___/\__|    \_/  |_|\___| \_/\_/ \___|_|
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Cloud Cost Viewer CLI (v%s)", formattedVersion)))
}
