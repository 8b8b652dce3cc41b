// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"websearch-action/internal/common/config"
	searchweb "websearch-action/internal/workers/agent/search-web"
	"websearch-action/pkg/registry"
)

func main() {
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	syncPath := syncCmd.String("path", registry.DefaultPath, "Path to registry file")
	syncConfig := syncCmd.String("config", "", "Config file used for function name, version and timeout")

	updatePath := updateCmd.String("path", registry.DefaultPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, ...)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", registry.DefaultPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "sync":
		_ = syncCmd.Parse(os.Args[2:])
		err = syncActivity(*syncPath, *syncConfig)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err = updateActivity(*updatePath, *idUpdate, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		err = validateRegistry(*validatePath)

	default:
		help()
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// syncActivity writes the search-web activity, as built from code and
// config, into the registry.
func syncActivity(path, configPath string) error {
	var msgs *searchweb.Config
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		msgs = searchweb.ConfigFromApp(cfg)
	}

	reg, err := registry.LoadOrNew(path)
	if err != nil {
		return err
	}

	activity := searchweb.Activity(msgs)
	if reg.Upsert(activity) {
		fmt.Printf("Added activity: %s\n", activity.ID)
	} else {
		fmt.Printf("Updated activity: %s\n", activity.ID)
	}
	return reg.Save(path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(id, field, value); err != nil {
		return err
	}
	if err := reg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", id, field, value)
	return nil
}

func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  sync     Write the search-web activity into the registry
  update   Update an existing activity's field
  validate Validate the registry file
  help     Show this help message

Examples:
  registry-updater sync -config configs/config.yaml
  registry-updater update -id search-web -field retries -value 1
  registry-updater validate -path configs/activity-registry.json`)
}
