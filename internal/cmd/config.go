package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Digital-Shane/title-crawl/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings in ~/.title-crawl/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return printConfig(cmd.OutOrStdout(), outputFormat(), cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save the config file",
	Long:  "Change one setting and save the config file.\n\nKeys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func printConfig(w io.Writer, f format, cfg *config.Config) error {
	if f == formatJSON {
		return writeJSON(w, cfg)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	rows := make([][]string, 0, len(values))
	for _, key := range config.Keys() {
		value := fmt.Sprint(values[key])
		if f == formatPlain {
			fmt.Fprintf(w, "%s\t%s\n", key, value)
			continue
		}
		rows = append(rows, []string{key, value})
	}
	if f == formatTable {
		fmt.Fprintln(w, renderTable([]string{"Key", "Value"}, rows, nil))
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
