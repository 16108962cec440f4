// Package config provides configuration management for vault-export.
//
// It utilizes Viper for loading configuration from environment
// variables and a .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings,
// divided into subsections:
//   - Export: fetch pipeline settings (tool command, workers, retries, backoff)
//   - Storage: S3/MinIO credentials and bucket for document upload
//   - History: export-run audit database (sqlite or mysql)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Export.Workers)
package config
