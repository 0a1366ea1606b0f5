package config

const (
	defaultConfigPath        = "~/.config/animelib/config.toml"
	defaultLibraryDir        = "~/Anime"
	defaultImagesDir         = "~/.local/share/animelib/images"
	defaultDataDir           = "~/.local/share/animelib"
	defaultLogDir            = "~/.local/share/animelib/logs"
	defaultCatalogBaseURL    = "https://api.jikan.moe/v4"
	defaultCatalogTimeout    = 10
	defaultCatalogRate       = 2.5
	defaultImageExtension    = "webp"
	defaultImageMaxAttempts  = 5
	defaultImageBaseDelayMS  = 500
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	libraryDirEnv            = "ANIMELIB_LIBRARY_DIR"
	catalogURLEnv            = "ANIMELIB_CATALOG_URL"
	maxCatalogRequestsPerSec = 3
	maxImageAttempts         = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			ImagesDir:  defaultImagesDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:           defaultCatalogBaseURL,
			TimeoutSeconds:    defaultCatalogTimeout,
			RequestsPerSecond: defaultCatalogRate,
		},
		Images: Images{
			Extension:   defaultImageExtension,
			MaxAttempts: defaultImageMaxAttempts,
			BaseDelayMS: defaultImageBaseDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
