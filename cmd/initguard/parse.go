package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/initguard/initguard/pkg/initdata"
)

var parseCmd = &cobra.Command{
	Use:   "parse [init-data]",
	Short: "Parse an init data string into its typed structure",
	Long: `Parse decodes an init data string and prints the typed structure as JSON.
It does not authenticate; combine with validate when the origin matters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseInitData,
}

func runParseInitData(cmd *cobra.Command, args []string) error {
	raw, err := initDataArg(args)
	if err != nil {
		return err
	}
	d, err := initdata.Parse(raw)
	if err != nil {
		return err
	}

	// AuthDate and CanSendAfter are kept out of the struct's JSON form; show
	// them explicitly alongside.
	out := struct {
		*initdata.InitData
		AuthDate     int64 `json:"auth_date,omitempty"`
		CanSendAfter int64 `json:"can_send_after,omitempty"`
	}{InitData: d, CanSendAfter: int64(d.CanSendAfter.Seconds())}
	if !d.AuthDate.IsZero() {
		out.AuthDate = d.AuthDate.Unix()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
