package cmd

import (
	"encoding/json"

	"lendingpool/handler/codes"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		panic(err)
	}

	cmd.Println(string(b))
}

func printError(cmd *cobra.Command, action string, err error) {
	_, code, msg := codes.Get(err)
	cmd.PrintErrf("%s failed: %d %s (%v)\n", action, code, msg, err)
}
