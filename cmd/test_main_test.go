package cmd

import (
	"os"
	"testing"

	"github.com/warpdl/warptimer/common"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "warptimer-cmd-test")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv(common.ConfigDirEnv, dir)
	if err := common.SetConfigDir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
