// Package config loads vkbackup settings.
//
// Sources, highest precedence first: command line flags, VKBACKUP_*
// environment variables, .env files, a YAML config file and DefaultConfig.
//
//	cfg, err := config.Load("", map[string]interface{}{"folder": "Backup"})
//
// The YAML file is searched in .vkbackup.yaml, .vkbackup.yml,
// ~/.config/vkbackup/config.yaml and ~/.vkbackup.yaml. Durations use Go
// syntax ("300ms", "3s").
package config
