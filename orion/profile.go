package orion

import (
	"fmt"
	"log/slog"

	"github.com/pkg/profile"
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
	"goroutine": profile.GoroutineProfile,
}

func profileMode(mode string) (func(*profile.Profile), error) {
	mode = normalizeProfile(mode)
	if mode == "" {
		return nil, nil
	}

	option, ok := profileModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}

	return option, nil
}

type noopStopper struct{}

func (noopStopper) Stop() {}

// StartProfile starts recording the given profile into dir. The returned
// value must be stopped before the process exits. An empty mode records
// nothing.
func StartProfile(mode, dir string) (interface{ Stop() }, error) {
	option, err := profileMode(mode)
	if err != nil {
		return nil, err
	}

	if option == nil {
		return noopStopper{}, nil
	}

	options := []func(*profile.Profile){option, profile.NoShutdownHook, profile.Quiet}
	if dir != "" {
		options = append(options, profile.ProfilePath(dir))
	}

	slog.Info("Start profiling",
		slog.String("mode", normalizeProfile(mode)),
		slog.String("dir", dir),
	)

	return profile.Start(options...), nil
}
