// Package config provides configuration management for the chart server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file; defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
//   - Server: bind host, port and scan strategy, root directory, browser launch
//   - Log: logging level and format
//
// Keys map to environment variables by upper-casing and replacing dots with
// underscores, e.g. server.max_attempts is SERVER_MAX_ATTEMPTS. Variables
// already set in the environment win over the .env file.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
