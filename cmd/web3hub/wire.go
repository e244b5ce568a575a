package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/credential"
	"github.com/nhle/web3hub/internal/logging"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/producer"
	"github.com/nhle/web3hub/internal/session"
	"github.com/nhle/web3hub/internal/store"
	appsync "github.com/nhle/web3hub/internal/sync"
	"github.com/nhle/web3hub/internal/wallet"
)

// services is everything a command needs, built from one config.
type services struct {
	cfg      *model.AppConfig
	logger   *zap.Logger
	kv       store.KV
	repo     *notify.Repository
	prefs    *prefs.Store
	producer *producer.Producer
	gate     *session.Gate

	publisher *alert.Publisher
}

// setup loads the config, builds the logger and opens storage. With
// toFile set, logs go to the configured file instead of stderr.
func setup(ctx context.Context, toFile bool) (*services, error) {
	cfg, err := model.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, toFile, globalFlags.debug)
	if err != nil {
		return nil, err
	}

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof)); err != nil {
		logger.Warn("setting GOMAXPROCS failed", zap.Error(err))
	}

	kv := store.Open(ctx, cfg.Storage, logger)
	if !kv.Durable() {
		logger.Warn("storage is not durable, changes will be lost on exit")
	}

	repo := notify.NewRepository(kv, notify.WithLogger(logger))
	if err := repo.Reload(ctx); err != nil {
		logger.Warn("loading notifications failed", zap.Error(err))
	}

	ps := prefs.New(kv, logger)
	if err := ps.EnsureDefaults(ctx); err != nil {
		logger.Warn("writing default preferences failed", zap.Error(err))
	}
	ps.Load(ctx)

	return &services{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		repo:     repo,
		prefs:    ps,
		producer: producer.New(repo),
		gate:     session.NewGate(cfg.Auth.AdminIdentity, cfg.Auth.AdminSecret),
	}, nil
}

// alerter combines the given sink with the RabbitMQ relay when one is
// configured. A relay that cannot be reached is skipped.
func (s *services) alerter(local alert.Alerter) alert.Alerter {
	if s.cfg.Alerts.AMQPURL == "" {
		return local
	}
	pub, err := alert.DialPublisher(s.cfg.Alerts.AMQPURL, s.cfg.Alerts.Exchange)
	if err != nil {
		s.logger.Warn("alert relay unavailable", zap.Error(err))
		return local
	}
	s.publisher = pub
	s.logger.Info("relaying alerts", zap.String("exchange", s.cfg.Alerts.Exchange))
	return alert.Multi{local, pub}
}

// poller builds the scheduled feed. The lease lets the TUI, poll and
// serve commands run side by side over one store with a single schedule.
func (s *services) poller(a alert.Alerter) *appsync.Poller {
	interval := s.cfg.Poller.Interval()
	return appsync.New(appsync.Config{
		Repo:     s.repo,
		Prefs:    s.prefs,
		Alerter:  a,
		Logger:   s.logger,
		Interval: interval,
		Lease:    appsync.NewLease(s.kv, 2*interval),
	})
}

// walletConnector builds the wallet connector. Without an endpoint it
// reports no provider.
func (s *services) walletConnector() *wallet.Connector {
	if s.cfg.Wallet.RPCURL == "" {
		return wallet.NewConnector(nil)
	}
	var token string
	creds, err := credential.Open()
	if err == nil {
		token, err = creds.Lookup(credential.KeyWalletToken)
	}
	if err != nil {
		s.logger.Warn("reading wallet token from keyring failed", zap.Error(err))
	}
	timeout := time.Duration(s.cfg.Wallet.TimeoutSec) * time.Second
	return wallet.NewConnector(wallet.NewRPCClient(s.cfg.Wallet.RPCURL, token, timeout))
}

func (s *services) close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Warn("closing alert relay failed", zap.Error(err))
		}
	}
	if err := s.kv.Close(); err != nil {
		s.logger.Warn("closing store failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}

func logAlert(logger *zap.Logger) alert.Alerter {
	return alert.Func(func(_ context.Context, a alert.Alert) error {
		logger.Info("alert",
			zap.String("id", a.ID),
			zap.String("title", a.Title),
			zap.String("message", a.Message),
		)
		return nil
	})
}

func wrapSetup(err error) error {
	return fmt.Errorf("starting %s: %w", programName, err)
}
