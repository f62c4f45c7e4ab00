package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/larago/larago/pkg/project"
	"github.com/larago/larago/pkg/queue"
	"github.com/larago/larago/pkg/tools"
	"github.com/spf13/cobra"
)

var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Process jobs from the queue",
	Long: `Poll the file-backed queue and process jobs until interrupted.

Examples:
  larago queue:work
  larago queue:work --queue emails --sleep 5
  larago queue:work --max-jobs 100`,
	Run: runQueueWork,
}

var queueFailedCmd = &cobra.Command{
	Use:   "queue:failed",
	Short: "List failed jobs",
	Run:   runQueueFailed,
}

var queueRetryCmd = &cobra.Command{
	Use:   "queue:retry [id]",
	Short: "Re-enqueue failed jobs",
	Args:  cobra.MaximumNArgs(1),
	Run:   runQueueRetry,
}

var queueFlushCmd = &cobra.Command{
	Use:   "queue:flush",
	Short: "Delete all failed jobs",
	Run:   runQueueFlush,
}

var (
	queueName    string
	queueMaxJobs int
	queueSleep   int
	queueForce   bool
)

func init() {
	queueWorkCmd.Flags().StringVar(&queueName, "queue", "default", "Queue to work")
	queueWorkCmd.Flags().IntVar(&queueMaxJobs, "max-jobs", 0, "Stop after this many jobs (0 = unlimited)")
	queueWorkCmd.Flags().IntVar(&queueSleep, "sleep", 3, "Seconds to sleep when the queue is empty")
	queueFlushCmd.Flags().BoolVar(&queueForce, "force", false, "Skip the confirmation prompt")
}

func queueStore() (*project.Layout, *queue.Store) {
	layout := mustLayout()
	return layout, queue.NewStore(layout.QueueDir())
}

// shortID truncates a job id for display. Hand-written envelopes can carry
// ids shorter than a UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runQueueWork(cmd *cobra.Command, args []string) {
	layout, store := queueStore()
	exists, err := store.Exists()
	if err != nil {
		fail(err)
	}
	if !exists {
		fail(fmt.Errorf("queue store %s does not exist", layout.QueueDir()))
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n  %s Queue worker started on %q\n\n", cyan("Larago"), queueName)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	processed, failed := 0, 0
	done := func() {
		if jsonOutput {
			printSuccess(QueueWorkOutput{Queue: queueName, Processed: processed, Failed: failed})
			return
		}
		fmt.Printf("\n  Processed %d jobs (%d failed)\n", processed, failed)
	}

	for {
		select {
		case <-signals:
			fmt.Println("\n  Shutting down...")
			done()
			return
		default:
		}

		job, ok, err := store.Pop(queueName)
		if err != nil {
			fail(err)
		}
		if !ok {
			select {
			case <-signals:
				fmt.Println("\n  Shutting down...")
				done()
				return
			case <-time.After(time.Duration(queueSleep) * time.Second):
			}
			continue
		}

		start := time.Now()
		if err := processJob(cmd, layout, job); err != nil {
			failed++
			if ferr := store.Fail(job, err.Error()); ferr != nil {
				fail(ferr)
			}
			if !jsonOutput {
				red := color.New(color.FgRed).SprintFunc()
				fmt.Printf("  %s %s %s: %v\n", red("✗"), shortID(job.ID), job.Name, err)
			}
		} else {
			processed++
			if !jsonOutput {
				statusOK("%s %s (%s)", shortID(job.ID), job.Name, time.Since(start).Round(time.Millisecond))
			}
		}

		if queueMaxJobs > 0 && processed+failed >= queueMaxJobs {
			done()
			return
		}
	}
}

// processJob executes one job envelope. Envelopes whose payload carries an
// "exec" command are delegated to that command in the project root; anything
// else is acknowledged and logged for the application to pick up.
func processJob(cmd *cobra.Command, layout *project.Layout, job queue.Job) error {
	if raw, ok := job.Payload["exec"]; ok {
		command, ok := raw.(string)
		if !ok || command == "" {
			return fmt.Errorf("exec payload must be a string")
		}
		return tools.RunInDir(cmd.Context(), layout.Root, nil, "sh", "-c", command)
	}
	return logProcessed(layout, job)
}

func logProcessed(layout *project.Layout, job queue.Job) error {
	dir := filepath.Join(layout.Storage(), "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "queue.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s processed %s %s queue=%s attempts=%d\n",
		time.Now().UTC().Format(time.RFC3339), job.ID, job.Name, job.Queue, job.Attempts)
	return err
}

func runQueueFailed(cmd *cobra.Command, args []string) {
	_, store := queueStore()
	failed, err := store.Failed()
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(failed)
		return
	}
	if len(failed) == 0 {
		statusInfo("No failed jobs")
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	for _, f := range failed {
		fmt.Printf("  %s %s %s queue=%s failed_at=%s\n    %s\n",
			red("✗"), f.Job.ID, f.Job.Name, f.Job.Queue,
			f.FailedAt.Format(time.RFC3339), f.Error)
	}
	fmt.Printf("\n  %d failed jobs\n", len(failed))
}

func runQueueRetry(cmd *cobra.Command, args []string) {
	_, store := queueStore()
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	retried, err := store.Retry(id)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(map[string]any{"retried": len(retried)})
		return
	}
	for _, job := range retried {
		statusOK("Re-enqueued %s %s on %q", shortID(job.ID), job.Name, job.Queue)
	}
	if len(retried) == 0 {
		statusInfo("No failed jobs to retry")
	}
}

func runQueueFlush(cmd *cobra.Command, args []string) {
	_, store := queueStore()
	if !queueForce && !confirmDestructive("Delete all failed jobs?") {
		statusWarn("Aborted")
		return
	}
	n, err := store.Flush()
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printSuccess(map[string]any{"flushed": n})
		return
	}
	statusOK("Flushed %d failed jobs", n)
}
