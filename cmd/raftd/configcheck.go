package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raftlab/raft/raft"
)

func newConfigCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config-check",
		Short: "parse and validate a raftd config file without starting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := raft.LoadFileConfig(configPath)
			if err != nil {
				return err
			}
			if fc.Self == "" {
				return fmt.Errorf("config: self must be set")
			}
			if _, ok := fc.Cohort[fc.Self]; !ok {
				return fmt.Errorf("config: cohort must include self (%q)", fc.Self)
			}
			fmt.Printf("ok: %d cohort members, self=%s\n", len(fc.Cohort), fc.Self)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "raftd.yaml", "path to config file")
	return cmd
}
