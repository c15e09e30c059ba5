//go:build !windows

package cmd

func shellArgs() (string, []string) {
	return "/bin/sh", []string{"-c"}
}
