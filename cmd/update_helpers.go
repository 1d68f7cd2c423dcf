package cmd

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

const noSelfUpdateEnv = "FBTOOL_NO_SELFUPDATE"

func selfUpdateDisabled() bool {
	return os.Getenv(noSelfUpdateEnv) == "1"
}

func getCurrentBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

func detectPackageManager(binPath string) string {
	p := strings.ToLower(binPath)
	switch {
	case strings.Contains(p, "/opt/homebrew/") || strings.Contains(p, "/usr/local/cellar/") ||
		strings.Contains(p, "/home/linuxbrew/"):
		return "homebrew"
	case strings.Contains(p, "\\scoop\\apps\\"):
		return "scoop"
	case strings.Contains(p, "/com.termux/files/usr/"):
		return "termux"
	}
	return ""
}

func userWritable(path string) bool {
	u, err := user.Current()
	if err != nil {
		return false
	}
	return strings.HasPrefix(path, u.HomeDir)
}

func displayVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		return v
	}
	return "v" + v
}

func releaseURL(tag string) string {
	return "https://github.com/" + releaseSlug() + "/releases/tag/" + displayVersion(tag)
}
