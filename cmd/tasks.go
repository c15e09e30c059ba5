package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/afero"
	"github.com/warpdl/warptimer/pkg/logger"
)

// taskSpec is one "<delay> <command>" entry from the command line or a
// task file.
type taskSpec struct {
	Delay   time.Duration
	Command string
}

var errNoCommand = errors.New("task has no command")

// parseDelay accepts Go duration syntax or a plain number of seconds.
func parseDelay(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid delay %q", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func parseTaskLine(line string) (taskSpec, error) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		if line == "" {
			return taskSpec{}, errNoCommand
		}
		return taskSpec{}, fmt.Errorf("%w: %q", errNoCommand, line)
	}
	delay, err := parseDelay(line[:i])
	if err != nil {
		return taskSpec{}, err
	}
	return taskSpec{
		Delay:   delay,
		Command: strings.TrimSpace(line[i:]),
	}, nil
}

// loadTaskFile reads one task per line. Blank lines and lines starting
// with '#' are skipped.
func loadTaskFile(fs afero.Fs, path string) ([]taskSpec, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var specs []taskSpec
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		spec, err := parseTaskLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		specs = append(specs, spec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// collectTasks merges inline tasks with the ones read from file.
// Inline tasks come first.
func collectTasks(fs afero.Fs, inline []string, file string) ([]taskSpec, error) {
	specs := make([]taskSpec, 0, len(inline))
	for _, raw := range inline {
		spec, err := parseTaskLine(raw)
		if err != nil {
			return nil, fmt.Errorf("--task %s: %w", shellescape.Quote(raw), err)
		}
		specs = append(specs, spec)
	}
	if file != "" {
		fromFile, err := loadTaskFile(fs, file)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}
	return specs, nil
}

var execCommand = exec.Command

// shellTask runs a task command through the platform shell.
type shellTask struct {
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func (s *shellTask) run(command string) error {
	name, args := shellArgs()
	c := execCommand(name, append(args, command)...)
	c.Stdout = s.stdout
	c.Stderr = s.stderr
	s.log.Debug("exec %s %s", name, shellescape.QuoteCommand(append(args, command)))
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", shellescape.Quote(command), err)
	}
	return nil
}
