package ecs

import "time"

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}

// Delta returns DeltaTime as a time.Duration, for ticking Timers.
func (f *UpdateFrame) Delta() time.Duration {
	return Seconds(f.DeltaTime)
}
