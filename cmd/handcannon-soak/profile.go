package main

import (
	"fmt"

	"github.com/pkg/profile"
)

type stopper interface {
	Stop()
}

type nopStopper struct{}

func (nopStopper) Stop() {}

// profileOption maps the -profile flag onto a pkg/profile mode.
func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	case "trace":
		return profile.TraceProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (cpu, mem, allocs, trace)", mode)
	}
}

// startProfile begins profiling into dir. An empty mode profiles nothing.
func startProfile(mode, dir string) (stopper, error) {
	if mode == "" {
		return nopStopper{}, nil
	}
	option, err := profileOption(mode)
	if err != nil {
		return nil, err
	}
	return profile.Start(option, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet), nil
}
