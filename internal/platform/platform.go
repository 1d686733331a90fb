package platform

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "windows"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths
type Info struct {
	OS           Platform
	HomeDir      string
	Username     string
	DownloadsDir string
	DesktopDir   string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information for the current user
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	return infoFor(Detect(), currentUser.HomeDir, currentUser.Username, os.Getenv), nil
}

func infoFor(platform Platform, homeDir, username string, getenv func(string) string) *Info {
	switch platform {
	case Linux:
		return getLinuxInfo(homeDir, username, getenv)
	case MacOS:
		return getMacOSInfo(homeDir, username)
	default:
		return &Info{
			OS:           platform,
			HomeDir:      homeDir,
			Username:     username,
			DownloadsDir: filepath.Join(homeDir, "Downloads"),
			DesktopDir:   filepath.Join(homeDir, "Desktop"),
		}
	}
}

// DefaultRoots returns the folders sorted when none are configured
func (i *Info) DefaultRoots() []string {
	return []string{i.DownloadsDir, i.DesktopDir}
}
