package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/shikshasetu/data/shiksha_setu.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/shikshasetu/data/indices/bleve"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 100
	}
	if cfg.Search.TopKCandidates == 0 {
		cfg.Search.TopKCandidates = 100
	}
	if cfg.Search.TitleBoost == 0 {
		cfg.Search.TitleBoost = 5.0
	}
	if cfg.Search.KeywordsBoost == 0 {
		cfg.Search.KeywordsBoost = 3.0
	}
	if cfg.Search.ContentBoost == 0 {
		cfg.Search.ContentBoost = 2.0
	}
	if cfg.Search.MinScore == 0 {
		cfg.Search.MinScore = 0.001
	}
	if cfg.Search.PreviewLength == 0 {
		cfg.Search.PreviewLength = 200
	}
	if cfg.Client.ServerURL == "" {
		cfg.Client.ServerURL = "http://localhost:8080"
	}
	if cfg.Client.DownloadDir == "" {
		cfg.Client.DownloadDir = "."
	}
	if cfg.Client.TimeoutSeconds == 0 {
		cfg.Client.TimeoutSeconds = 30
	}
}
