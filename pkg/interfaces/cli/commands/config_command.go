package commands

import (
	"context"
	"fmt"

	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/infrastructure/configstore"
)

// ConfigInitCommand writes the built-in settings to a JSON file so they can
// be edited and passed back with -config.
type ConfigInitCommand struct {
	config Config
}

// NewConfigInitCommand creates a new config-init command
func NewConfigInitCommand(config Config) *ConfigInitCommand {
	return &ConfigInitCommand{config: config}
}

// Execute runs the config-init command
func (c *ConfigInitCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.ConfigFile == "" {
		return fmt.Errorf("config file path is required (use -config)")
	}

	cfg, err := DefaultAllocationConfig()
	if err != nil {
		return err
	}
	if c.config.Threshold >= 0 {
		cfg.BalanceThreshold = entities.Quantity(c.config.Threshold)
	}

	if err := configstore.Save(c.config.ConfigFile, cfg); err != nil {
		return err
	}

	fmt.Printf("💾 Settings written to %s\n", c.config.ConfigFile)
	return nil
}

// showHelp displays detailed help information
func (c *ConfigInitCommand) showHelp() {
	fmt.Println(`⚙️  Settings Export Tool

USAGE:
    stockalloc config-init -config <file.json> [OPTIONS]

DESCRIPTION:
    Writes the built-in store priority, excluded stores, balancing pairs and
    threshold to a JSON file. Edit the file and pass it to the distribute and
    balance commands with -config.

OPTIONS:
    -config <file>     Destination JSON file (required)
    -threshold <n>     Balance threshold to record (default: 2)

EXAMPLES:
    stockalloc config-init -config settings.json`)
}
