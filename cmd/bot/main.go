package main

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/infrastructure/database/postgres"
	"github.com/leadreports/lead-report-bot/infrastructure/repository"
	"github.com/leadreports/lead-report-bot/internal/adapter/telegram"
	"github.com/leadreports/lead-report-bot/internal/api"
	"github.com/leadreports/lead-report-bot/internal/config"
	"github.com/leadreports/lead-report-bot/internal/scheduler"
	"github.com/leadreports/lead-report-bot/internal/usecases/ingesting"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	loc, err := cfg.Location()
	if err != nil {
		logrus.WithError(err).Fatal("invalid report timezone")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	leadRepo, err := repository.NewLeadRepository(pgConn, cfg.Report.Timezone)
	if err != nil {
		logrus.WithError(err).Fatal("error preparing lead repository")
	}

	parser := reporting.NewDateExpressionParser(loc, cfg.Report.MonthTokens)
	reporter := reporting.NewService(parser, reporting.NewAggregator(), leadRepo)
	leadParser := ingesting.NewParser()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to the Telegram API")
	}
	logrus.WithField("username", bot.Self.UserName).Info("telegram bot authorized")

	botHandler := telegram.NewHandler(bot, reporter, leadParser, leadRepo, cfg, loc)

	dailyReportService, err := scheduler.NewDailyReportService(reporter, botHandler, leadRepo, cfg, loc)
	if err != nil {
		logrus.WithError(err).Fatal("error configuring daily report scheduler")
	}

	if err := dailyReportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting daily report scheduler")
	}

	go botHandler.Run(ctx)

	server, err := api.New(cfg, reporter, dailyReportService, loc)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("error pinging PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
