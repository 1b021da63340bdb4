package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the ConEmu configuration file",
	Long: `Copy ConEmu.xml to ConEmu_Backup_<yyyyMMdd>.xml in the same directory.

An existing backup for the same day is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		master, err := openMasterFile()
		if err != nil {
			return err
		}

		dest, err := master.Backup(time.Now())
		if err != nil {
			return fmt.Errorf("failed to back up %s: %w", master.Path(), err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dest)
		return err
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
