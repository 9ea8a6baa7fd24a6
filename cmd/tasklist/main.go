package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tasklist/internal/clock"
	"tasklist/internal/config"
	"tasklist/internal/repository"
	"tasklist/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("TASKLIST_CONFIG"), "path to YAML config file")
	registerName := flag.String("register", "", "display name to register the active user with if missing")
	importPath := flag.String("import", "", "import a task file into the active user's collection and exit")
	exportPath := flag.String("export", "", "export the active user's tasks to a file and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.ActiveUser == "" {
		log.Fatal("active user is required (TASKLIST_USER or active_user in config)")
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	clk := clock.System()
	taskSvc := service.NewTaskService(userRepo, taskRepo, clk)
	reminderSvc := service.NewReminderService(taskRepo, clk, !cfg.KeepOverdueArmed)

	if *registerName != "" {
		exists, err := userRepo.Exists(ctx, cfg.ActiveUser)
		if err != nil {
			log.Fatalf("check user: %v", err)
		}
		if !exists {
			if _, err := taskSvc.CreateUser(ctx, *registerName, cfg.ActiveUser); err != nil {
				log.Fatalf("register user %s: %v", cfg.ActiveUser, err)
			}
			log.Printf("Registered user %s.", cfg.ActiveUser)
		}
	}

	if users, err := userRepo.ListAll(ctx); err == nil {
		names := make([]string, 0, len(users))
		for _, u := range users {
			names = append(names, u.Username)
		}
		log.Printf("Known users: %s", strings.Join(names, ", "))
	}

	if *importPath != "" {
		runImport(ctx, taskSvc, cfg.ActiveUser, *importPath)
		return
	}
	if *exportPath != "" {
		runExport(ctx, taskSvc, cfg.ActiveUser, *exportPath)
		return
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.PollInterval, func() {
		pollCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		report(reminderSvc.Poll(pollCtx, cfg.ActiveUser))
	}); err != nil {
		log.Fatalf("schedule poll: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// One immediate poll, matching the poll-on-user-switch behavior.
	report(reminderSvc.Poll(ctx, cfg.ActiveUser))

	log.Printf("Task list runner started for %s (poll every %s).", cfg.ActiveUser, cfg.PollInterval)
	<-ctx.Done()
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("runner stopped: %v", err)
	}
	log.Println("Shutdown complete.")
}

func runImport(ctx context.Context, svc *service.TaskService, username, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	n, err := svc.ImportTasks(ctx, username, f)
	if err != nil {
		log.Fatalf("import %s: %v", path, err)
	}
	log.Printf("Imported %d tasks from %s.", n, path)
}

func runExport(ctx context.Context, svc *service.TaskService, username, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := svc.ExportTasks(ctx, username, f); err != nil {
		log.Fatalf("export %s: %v", path, err)
	}
	log.Printf("Exported tasks to %s.", path)
}

func report(res service.PollResult) {
	for _, r := range res.Due {
		log.Printf("DUE       %-30q deadline %s (%s)", r.TaskName, r.Deadline, r.Label)
	}
	for _, r := range res.SnoozedDue {
		log.Printf("SNOOZED   %-30q deadline %s (%s)", r.TaskName, r.Deadline, r.Label)
	}
	for _, r := range res.Overdue {
		log.Printf("OVERDUE   %-30q deadline %s (%s)", r.TaskName, r.Deadline, r.Label)
	}
	for _, r := range res.Pending {
		log.Printf("UPCOMING  %-30q deadline %s (%s)", r.TaskName, r.Deadline, r.Label)
	}
}
