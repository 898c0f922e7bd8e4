package instance

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// processAlive treats a lock as live when its PID exists and, where the platform
// reports it, the process was created no later than the record. The second check
// catches a recycled PID.
func processAlive(rec Record) bool {
	if rec.PID == os.Getpid() {
		return true
	}
	exists, err := process.PidExists(int32(rec.PID))
	if err != nil || !exists {
		return false
	}
	if rec.Started.IsZero() {
		return true
	}
	p, err := process.NewProcess(int32(rec.PID))
	if err != nil {
		return true
	}
	createdMs, err := p.CreateTime()
	if err != nil || createdMs <= 0 {
		return true
	}
	created := time.UnixMilli(createdMs)
	return !created.After(rec.Started.Add(2 * time.Second))
}
