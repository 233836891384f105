package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// DirMode is the permission mode for directories created by [MkdirAll].
const DirMode os.FileMode = 0o700

// debugBin matches the default output name of dlv.
var debugBin = regexp.MustCompile(`^__debug_bin\d*$`)

// Prefix returns the base name of the running executable without its
// extension. A dlv debug binary maps to [Name] and leading dots are
// removed. The config and cache directories are named after it.
var Prefix = sync.OnceValue(func() string {
	return prefixOf(executable())
})

func executable() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}

	return exe
}

func prefixOf(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	id := strings.TrimSuffix(base, filepath.Ext(base))

	if id == "" || debugBin.MatchString(id) {
		return Name
	}

	return id
}

// ConfigDir returns the per-user configuration directory.
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the per-user directory for transient files such as
// REPL history and profiles.
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir joins Prefix to the directory reported by lookup, falling back to
// fallback under the home directory, then to the working directory.
func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigPath joins elem to [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// CachePath joins elem to [CacheDir].
func CachePath(elem ...string) string {
	return filepath.Join(append([]string{CacheDir()}, elem...)...)
}

// MkdirAll creates the config and cache directories.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		err := os.MkdirAll(dir, DirMode)
		if err != nil {
			return err
		}
	}

	return nil
}
