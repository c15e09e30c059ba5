//go:build windows

package cmd

func shellArgs() (string, []string) {
	return "cmd", []string{"/C"}
}
