package config

const (
	defaultConfigPath       = "~/.config/brandsort/config.toml"
	projectConfigName       = "brandsort.toml"
	defaultLogDir           = "~/.local/share/brandsort/logs"
	defaultAPIBind          = "127.0.0.1:7489"
	defaultStagingPrefix    = "__webp to be move to the right folders"
	defaultQuarantineName   = "Old Images"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultLogBuffer        = 2048
	defaultStatusLines      = 200
	defaultShutdownGrace    = 5

	// RootEnvVar supplies organizer.default_root when the file leaves it blank.
	RootEnvVar = "BRANDSORT_ROOT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Organizer: Organizer{
			StagingPrefix:  defaultStagingPrefix,
			QuarantineName: defaultQuarantineName,
		},
		Logging: Logging{
			Format:         defaultLogFormat,
			Level:          defaultLogLevel,
			RetentionDays:  defaultLogRetentionDays,
			StageOverrides: map[string]string{},
		},
		Daemon: Daemon{
			LogBuffer:     defaultLogBuffer,
			StatusLines:   defaultStatusLines,
			ShutdownGrace: defaultShutdownGrace,
		},
	}
}
