//go:build !linux

package clock

// NewAlarm reports ErrUnsupportedPlatform: the SIGALRM interval timer is
// only wired up on linux. Use the ticker strategy elsewhere.
func NewAlarm() (Source, error) {
	return nil, ErrUnsupportedPlatform
}
