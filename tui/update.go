package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fbtool/launcher/tui/theme"
)

type updateStyles struct {
	version lipgloss.Style
	arrow   lipgloss.Style
	pmBox   lipgloss.Style
	command lipgloss.Style
}

func newUpdateStyles() updateStyles {
	return updateStyles{
		version: PrimaryStyle().Bold(true),
		arrow:   SubtleTextStyle(),
		pmBox: WarningStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.WarningColorHex)).
			Padding(1, 2),
		command: PrimaryStyle().Bold(true),
	}
}

func RenderUpToDate(version string) string {
	InitCommonStyles(os.Stdout)
	return SuccessStyle().Render(fmt.Sprintf("✓ fbtool is already up-to-date (%s)", version))
}

// RenderUpdateAvailable renders the one-line launcher release notice.
func RenderUpdateAvailable(currentVer, latestVer string) string {
	InitCommonStyles(os.Stdout)
	styles := newUpdateStyles()
	return fmt.Sprintf("%s %s %s %s %s",
		WarningStyle().Render("⚠ Launcher update available:"),
		styles.version.Render(currentVer),
		styles.arrow.Render("→"),
		styles.version.Render(latestVer),
		HelpStyle().Render("(run 'fbtool self-update')"))
}

func RenderUpdating(currentVer, latestVer string) string {
	InitCommonStyles(os.Stdout)
	styles := newUpdateStyles()
	return fmt.Sprintf("%s %s %s %s%s",
		PrimaryStyle().Render("Updating fbtool from"),
		styles.version.Render(currentVer),
		styles.arrow.Render("to"),
		styles.version.Render(latestVer),
		PrimaryStyle().Render("..."))
}

func RenderPMInstructions(pm string) string {
	InitCommonStyles(os.Stdout)
	styles := newUpdateStyles()

	var pmName, command string
	switch pm {
	case "homebrew":
		pmName = "Homebrew"
		command = "brew update && brew upgrade fbtool"
	case "scoop":
		pmName = "Scoop"
		command = "scoop update fbtool"
	case "termux":
		pmName = "Termux pkg"
		command = "pkg upgrade fbtool"
	default:
		pmName = "a package manager"
		command = "reinstall from the latest release"
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("This installation is managed by %s.\n", pmName))
	content.WriteString(fmt.Sprintf("Run: %s", styles.command.Render(command)))
	return styles.pmBox.Render(content.String())
}

func RenderUpdateSuccess(version string) string {
	InitCommonStyles(os.Stdout)
	return SuccessStyle().Render(fmt.Sprintf("✓ Updated to %s. Restart fbtool to use the new version.", version))
}

func RenderUpdateFailed(err error, releaseURL string) string {
	InitCommonStyles(os.Stdout)
	var content strings.Builder
	content.WriteString(ErrorStyle().Render(fmt.Sprintf("✗ Update failed: %v", err)))
	content.WriteString("\n")
	content.WriteString(HelpStyle().Render(fmt.Sprintf("You can download the latest version from: %s", releaseURL)))
	return content.String()
}
