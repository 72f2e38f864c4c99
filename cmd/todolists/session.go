package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/todolists"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/ports"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
	Long:  `List, inspect, and remove the sessions held by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.StateStore) error {
			ids, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No active sessions found.")
				return nil
			}

			fmt.Fprintln(out, "Active Sessions:")
			for _, id := range ids {
				st, err := store.Load(cmd.Context(), id)
				if err != nil {
					fmt.Fprintf(out, "- %s (unreadable: %v)\n", id, err)
					continue
				}
				fmt.Fprintf(out, "- %s (%d lists)\n", id, len(st.Lists))
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		asYAML, _ := cmd.Flags().GetBool("yaml")

		return withStore(cmd, func(store ports.StateStore) error {
			state, err := store.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("failed to load session '%s': %w", sessionID, err)
			}
			data, err := formatState(state, asYAML)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [session-id...]",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("requires at least one session id, or --all")
		}

		return withStore(cmd, func(store ports.StateStore) error {
			ids := args
			if all {
				var err error
				if ids, err = store.List(cmd.Context()); err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			var errs []error
			for _, id := range ids {
				if err := store.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("failed to remove '%s': %w", id, err))
					continue
				}
				fmt.Fprintf(out, "Removed session '%s'\n", id)
			}
			return errors.Join(errs...)
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionInspectCmd.Flags().Bool("yaml", false, "Print the state as YAML instead of JSON")
	sessionRmCmd.Flags().Bool("all", false, "Remove every stored session")
}

func withStore(cmd *cobra.Command, fn func(ports.StateStore) error) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	store, closeStore, err := todolists.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

// formatState renders the state with its JSON field names, as YAML when asked.
func formatState(state *domain.State, asYAML bool) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	if !asYAML {
		return data, nil
	}

	// JSON is valid YAML; decoding into a node keeps the key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert state: %w", err)
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow and quoting styles carried over from the JSON source.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
