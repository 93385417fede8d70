package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	statusadapter "github.com/bnema/pabx-entitlements/internal/adapters/render/status"
	tomlrepo "github.com/bnema/pabx-entitlements/internal/adapters/repo/toml"
	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/logging"
	"github.com/bnema/pabx-entitlements/internal/ports"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

type app struct {
	service         *application.Service
	logger          *slog.Logger
	statusRenderer  func([]application.Status, statusadapter.RenderOptions) (string, error)
	statsRenderer   func(application.Stats, statusadapter.RenderOptions) (string, error)
	isTerminal      func(io.Writer) bool
	metricsTextfile string
}

func wireApp(cfg *viper.Viper, logOutput io.Writer) (*app, error) {
	logger := logging.New(logging.Config{
		Level:  cfg.GetString(logLevelKey),
		Format: cfg.GetString(logFormatKey),
		Output: logOutput,
	})

	location, err := resolveLocation(cfg)
	if err != nil {
		return nil, err
	}

	accounts, err := tomlrepo.NewRepository(cfg, location)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	plans, err := tomlrepo.NewPlanRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire plan repository: %w", err)
	}

	notifications, err := tomlrepo.NewNotificationRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire notification repository: %w", err)
	}

	service := application.NewService(accounts, plans, notifications, ports.SystemClock{}, application.Settings{
		Location: location,
		Locale:   resolveLocale(cfg),
		Logger:   logger,
	})

	logger.Debug("application wired",
		"timezone", location.String(),
		"locale", cfg.GetString(localeKey),
		"config_file", cfg.ConfigFileUsed(),
	)

	return &app{
		service:         service,
		logger:          logger,
		statusRenderer:  statusadapter.Render,
		statsRenderer:   statusadapter.RenderStats,
		isTerminal:      writerIsTerminal,
		metricsTextfile: cfg.GetString(metricsTextfileKey),
	}, nil
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
