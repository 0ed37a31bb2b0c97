package config

import (
	"fmt"
	"os"
)

const sampleHeader = `# treeport Configuration File
#
# Serves one directory tree over HTTP. Every value below can be overridden
# with an environment variable: TREEPORT_<SECTION>_<KEY>, for example
# TREEPORT_TREE_ROOT=/data or TREEPORT_LOGGING_LEVEL=DEBUG.
#
# Sizes accept "1024", "8KiB", "1Mi". Durations accept "30s", "5m".
#
# command.executor:
#   encode  - reply with the encoded command line (default)
#   parse   - reply with a JSON description of the parsed command
#   process - run command.program with command.args and the payload as
#             one final argument (no shell)

`

// InitConfig writes a sample configuration to the default location and
// returns its path. An existing file is only replaced when force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a sample configuration to path.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := SaveConfig(GetDefaultConfig(), path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read back config file: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(sampleHeader), data...), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
