package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"reviserr/internal/config"
	"reviserr/internal/credential"
	"reviserr/internal/logging"
	"reviserr/internal/provider"
)

// environment is the per-invocation wiring shared by the commands. The key
// slot lives only as long as the command runs.
type environment struct {
	cfg      config.Config
	ctx      context.Context
	logger   *logrus.Logger
	slot     *credential.Slot
	registry *provider.Registry
	provider provider.Kind

	stop     context.CancelFunc
	closeLog func() error
}

type envOptions struct {
	provider string
	// logOutput receives log lines when no log file is configured.
	logOutput io.Writer
}

var notifyContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func newEnvironment(cfg config.Config, opts envOptions) (*environment, error) {
	kind := cfg.DefaultProvider()
	if opts.provider != "" {
		parsed, err := provider.ParseKind(opts.provider)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Output: opts.logOutput,
	})
	if err != nil {
		return nil, err
	}

	ctx, stop := notifyContext(context.Background())
	ctx, sessionID := logging.NewSession(ctx, logger)
	logging.WithContext(ctx).WithField("provider", kind).Debugf("session %s started", sessionID)

	return &environment{
		cfg:      cfg,
		ctx:      ctx,
		logger:   logger,
		slot:     credential.NewSlot(),
		registry: provider.NewRegistry(cfg.ProviderOptions()),
		provider: kind,
		stop:     stop,
		closeLog: closeLog,
	}, nil
}

// providerBaseURL is the endpoint the offline probe resolves.
func (env *environment) providerBaseURL() string {
	return provider.BaseURL(env.provider, env.cfg.ProviderOptions()[env.provider])
}

// close wipes the key and releases the logger.
func (env *environment) close(stderr io.Writer) {
	env.slot.Clear()
	env.stop()
	if err := env.closeLog(); err != nil {
		fmt.Fprintf(stderr, "Failed to close log file: %v\n", err)
	}
}
