package app

import (
	"context"
	"fmt"

	"architect/internal/config"
	"architect/internal/design"
	"architect/internal/llm"
	"architect/internal/orchestrator"
	"architect/internal/research"
	"architect/internal/server"
)

type App struct {
	server *server.Server
	llm    llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	client, err := llm.NewGeminiClient(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	executor := research.NewExecutor(research.NewExaClient(cfg.ExaAPIKey))
	generator := design.NewGenerator(client)
	orch := orchestrator.New(client, executor, generator)

	chatHandler := server.NewChatHandler(orch)
	researchHandler := server.NewResearchHandler(executor)
	decisionHandler := server.NewDecisionHandler()

	// Routing & Server
	mux := server.NewMux(chatHandler, researchHandler, decisionHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		llm:    client,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llm.Close(); err == nil {
		err = cerr
	}
	return err
}
