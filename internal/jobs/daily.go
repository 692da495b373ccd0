package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/kpi"
	"github.com/Luapxanna/ops-pilot/internal/logging"
	"github.com/Luapxanna/ops-pilot/internal/notify"
	"github.com/Luapxanna/ops-pilot/internal/tasks"
)

// Runner bundles the daily maintenance work: overdue marking, KPI refresh
// and the digest. It is driven either by the external clock trigger (the
// jobs CLI command) or by the in-process ticker while serving.
type Runner struct {
	tasks    *tasks.Service
	kpis     *kpi.Service
	notifier *notify.Notifier
}

// NewRunner builds a Runner over the given services.
func NewRunner(taskSvc *tasks.Service, kpiSvc *kpi.Service, notifier *notify.Notifier) *Runner {
	return &Runner{tasks: taskSvc, kpis: kpiSvc, notifier: notifier}
}

// RunOnce executes one full daily pass. Individual step failures are
// logged and do not abort the remaining steps.
func (r *Runner) RunOnce(now time.Time) {
	logging.Logger.Info("Starting daily jobs")

	marked, err := r.tasks.MarkOverdueTasks(now)
	if err != nil {
		logging.Logger.Errorf("Marking overdue tasks failed: %v", err)
	} else {
		logging.Logger.Infof("Marked %d tasks as OVERDUE", marked)
	}

	if err := r.kpis.Refresh(); err != nil {
		logging.Logger.Errorf("KPI refresh failed: %v", err)
	}

	digest, err := r.buildDigest()
	if err != nil {
		logging.Logger.Errorf("Building daily digest failed: %v", err)
	} else if err := r.notifier.SendDigest("Daily Digest", digest); err != nil {
		logging.Logger.Errorf("Sending daily digest failed: %v", err)
	}

	logging.Logger.Info("Daily jobs completed")
}

// Start runs RunOnce on every tick until ctx is cancelled.
func (r *Runner) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.RunOnce(now)
			}
		}
	}()
}

func (r *Runner) buildDigest() (string, error) {
	completion, err := r.kpis.TaskCompletionPercentage()
	if err != nil {
		return "", err
	}
	durations, err := r.kpis.ProjectDurationMetrics()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Daily Digest\n")
	b.WriteString("============\n\n")
	fmt.Fprintf(&b, "Task Completion Percentage:\n%.2f%%\n\n", completion)
	b.WriteString("Project Duration Metrics:\n")
	for _, d := range durations {
		if d.Duration != nil {
			fmt.Fprintf(&b, "%s: %.1f days\n", d.ProjectName, *d.Duration)
		} else {
			fmt.Fprintf(&b, "%s: N/A\n", d.ProjectName)
		}
	}
	return b.String(), nil
}
