package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

const (
	verboseFlag = "verbose"
	configFlag  = "config"
)

func verboseFromCmd(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	flag := cmd.Flag(verboseFlag)
	if flag == nil {
		return false
	}

	enabled, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		return false
	}

	return enabled
}

func configPathFromCmd(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	flag := cmd.Flag(configFlag)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}
