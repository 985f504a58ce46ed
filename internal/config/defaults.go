package config

const (
	defaultConfigPath        = "~/.config/ssmt/config.toml"
	defaultVendor            = "SSMT4"
	defaultCatalogBaseURL    = "https://hyp-api.mihoyo.com/hyp/hyp-connect/api/getAllGameBasicInfo"
	defaultCatalogLauncherID = "jGHBHlcOq1"
	defaultCatalogLanguage   = "zh-cn"
	defaultCatalogTimeout    = 30
	defaultIconMaxSize       = 256
	defaultHistoryEnabled    = true
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults. Paths that
// depend on the host (resource and local data directories) are filled in
// during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			Vendor: defaultVendor,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			LauncherID:     defaultCatalogLauncherID,
			Language:       defaultCatalogLanguage,
			TimeoutSeconds: defaultCatalogTimeout,
		},
		Assets: Assets{
			IconMaxSize: defaultIconMaxSize,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
