// Package main implements the cdf command-line tool: connection
// checks, ad-hoc parameterised queries and password generation against
// profiles defined in a TOML file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleardemon/cdf/random"
	"github.com/cleardemon/cdf/sqldb"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cdf",
		Short: "Utility belt for the cdf library – MySQL access and helpers",
	}

	var configPath string
	var profileName string
	var verbose bool
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cdf.toml", "Path to the connection profile file")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "default", "Name of the connection profile")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace executed SQL")

	openClient := func(cmd *cobra.Command) (*sqldb.Client, error) {
		creds, err := loadProfile(configPath, profileName)
		if err != nil {
			return nil, err
		}
		var opts []sqldb.Option
		if verbose {
			log, err := zap.NewDevelopment()
			if err != nil {
				return nil, fmt.Errorf("failed to build logger: %w", err)
			}
			opts = append(opts, sqldb.WithLogger(log))
		}
		client, err := sqldb.NewClient(creds, opts...)
		if err != nil {
			return nil, err
		}
		if err := client.Open(cmd.Context()); err != nil {
			return nil, err
		}
		return client, nil
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect to the profile's database and report success",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()
			fmt.Printf("Connected using profile %q\n", profileName)
			return nil
		},
	}

	var params []string
	var format string
	queryCmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Execute one SQL statement with positional parameters",
		Long: `Execute one SQL statement against the profile's database.
Placeholders (?) in the statement are filled from --param flags in
order; each flag takes the form type:value, e.g. --param int:5.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			client.NewQuery()
			for _, spec := range params {
				typ, value, err := parseParam(spec)
				if err != nil {
					return err
				}
				if err := client.AddParameter(typ, value); err != nil {
					return err
				}
			}
			rows, err := client.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Printf("OK, %d row(s) affected\n", client.RowCount())
				return nil
			}
			return printRows(os.Stdout, rows, format)
		},
	}
	queryCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Typed parameter as type:value (repeatable)")
	queryCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	var passwordLength int
	passwdCmd := &cobra.Command{
		Use:   "passwd",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := random.Password(passwordLength)
			if err != nil {
				return err
			}
			fmt.Println(p)
			return nil
		},
	}
	passwdCmd.Flags().IntVarP(&passwordLength, "length", "l", 16, "Password length")

	rootCmd.AddCommand(pingCmd, queryCmd, passwdCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
