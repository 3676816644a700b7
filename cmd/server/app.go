package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/task"
	"github.com/phrazzld/todo-api/internal/web"
)

// application holds the shared application dependencies. The todo list
// lives in todoStore for the life of the process.
type application struct {
	config *config.Config
	logger *slog.Logger

	todoStore    *memory.TodoStore
	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
	todoService  service.TodoService
	webHandler   *web.Handler

	now func() time.Time
}

// newApplication wires the store, event delivery, service and web client,
// and starts the background task runner.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}

	app.todoStore = memory.NewTodoStore(logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Events.Workers,
		QueueSize:   cfg.Events.QueueSize,
	}, logger)
	dispatcher := task.NewEventDispatcher(app.taskRunner, app.eventEmitter, logger)

	var err error
	app.todoService, err = service.NewTodoService(app.todoStore, dispatcher, logger,
		service.WithClock(app.now))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize todo service: %w", err)
	}

	app.webHandler, err = web.NewHandler(cfg.Client, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web client: %w", err)
	}

	app.taskRunner.Start()

	logger.Info("application initialized")
	return app, nil
}

// cleanup flushes pending events and releases application resources.
func (app *application) cleanup(ctx context.Context) {
	if err := app.taskRunner.Stop(ctx); err != nil {
		app.logger.Error("failed to stop task runner", "error", err)
	}
	app.logger.Info("discarding in-memory todos", "count", app.todoStore.Len())
}
