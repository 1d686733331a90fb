package platform

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// getLinuxInfo returns platform-specific information for Linux. Downloads
// and Desktop follow the XDG user directories when they are set.
func getLinuxInfo(homeDir, username string, getenv func(string) string) *Info {
	userDirs := readUserDirs(homeDir, getenv)

	return &Info{
		OS:           Linux,
		HomeDir:      homeDir,
		Username:     username,
		DownloadsDir: xdgDir("XDG_DOWNLOAD_DIR", homeDir, "Downloads", userDirs, getenv),
		DesktopDir:   xdgDir("XDG_DESKTOP_DIR", homeDir, "Desktop", userDirs, getenv),
	}
}

func xdgDir(key, homeDir, fallback string, userDirs map[string]string, getenv func(string) string) string {
	value := getenv(key)
	if value == "" {
		value = userDirs[key]
	}
	if value == "" {
		return filepath.Join(homeDir, fallback)
	}

	value = strings.ReplaceAll(value, "$HOME", homeDir)
	if !filepath.IsAbs(value) {
		value = filepath.Join(homeDir, value)
	}
	return filepath.Clean(value)
}

// readUserDirs parses $XDG_CONFIG_HOME/user-dirs.dirs, the file
// xdg-user-dirs-update maintains. A missing file yields an empty map.
func readUserDirs(homeDir string, getenv func(string) string) map[string]string {
	configHome := getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}

	dirs := make(map[string]string)
	file, err := os.Open(filepath.Join(configHome, "user-dirs.dirs"))
	if err != nil {
		return dirs
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		dirs[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return dirs
}
