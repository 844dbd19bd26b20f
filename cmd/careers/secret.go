package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"careers-engine/internal/secrets"

	"github.com/spf13/cobra"
)

func newSecretCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the SFTP publish password in the OS keyring",
	}

	var password string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store the SFTP password (reads stdin when --password is not given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := sftpAccount(root)
			if err != nil {
				return err
			}
			pw := password
			if pw == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password on stdin")
				}
				pw = strings.TrimRight(line, "\r\n")
			}
			if err := secrets.SetSFTPPassword(account, pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stored password for", account)
			return nil
		},
	}
	set.Flags().StringVar(&password, "password", "", "password to store")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored SFTP password",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := sftpAccount(root)
			if err != nil {
				return err
			}
			if err := secrets.DeleteSFTPPassword(account); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted password for", account)
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}

func sftpAccount(root *rootOptions) (string, error) {
	cfg, _, err := loadConfig(root.configPath)
	if err != nil {
		return "", err
	}
	if cfg.Publish.User == "" || cfg.Publish.Host == "" {
		return "", errors.New("publish.user and publish.host must be set")
	}
	return secrets.SFTPAccount(cfg.Publish.User, cfg.Publish.Host), nil
}
