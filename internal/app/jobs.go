package app

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/internal/domain"
	"github.com/shoplens/shoplens/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	if a.appConfig.Monitor.Enabled {
		_, err = a.sched.AddFunc("@every 10s", func() {
			a.SchedConsoleMonitorTask()
		})
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	// Collect CPU usage
	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	// Collect memory usage
	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	// Collect process CPU usage
	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("shoplens_cpuuse", int64(cpuuse*100)) // Store as percentage * 100
	}

	// Collect process memory usage
	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("shoplens_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedConsoleMonitorTask prints a live status block to the console so an
// operator watching the terminal can see the system state at a glance.
func (a *Application) SchedConsoleMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	snap := a.catalog.Snapshot()
	total, active := a.users.Counts()

	classifierState := "UNAVAILABLE"
	if a.classifier.Available() {
		classifierState = "READY"
	}

	fmt.Println("============================================================")
	fmt.Printf("SHOPLENS MONITOR - %s\n", time.Now().Format(domain.TimeLayout))
	fmt.Println("============================================================")
	fmt.Printf("Products: %d | Catalog files: %d | Loaded: %s\n",
		len(snap.Products), snap.SourceCount, snap.LoadedAt.Format(domain.TimeLayout))
	fmt.Printf("Users: %d (%d active) | Classifier: %s\n", total, active, classifierState)

	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		if meminfo, err := mem.VirtualMemory(); err == nil {
			fmt.Printf("CPU: %.1f%% | Memory: %.1f%%\n", cpuuse[0], meminfo.UsedPercent)
		}
	}

	recent := a.journal.Tail(10)
	if len(recent) > 0 {
		fmt.Println("Recent activity:")
		for _, e := range recent {
			fmt.Printf("  [%s] %s %s - %s\n", e.Timestamp, e.User, e.Action, e.Details)
		}
	}
	fmt.Println("============================================================")
}
