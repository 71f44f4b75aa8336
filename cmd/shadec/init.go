// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadegen/config"
)

func newInitCommand() *cobra.Command {
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName + " to the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(config.FileName); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", config.FileName)
			}
			f, err := os.Create(config.FileName)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := config.Default().Write(f); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), config.FileName, "written")
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return initCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shadec version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shadec version %s\n", shadecVersion)
			return nil
		},
	}
}
