package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var healthURL string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that a planning service is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := strings.TrimRight(strings.TrimSpace(healthURL), "/") + "/healthz"
		cl := &http.Client{Timeout: 5 * time.Second}
		resp, err := cl.Get(u)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthURL, "url", "http://127.0.0.1:8090", "Service base url")
}
