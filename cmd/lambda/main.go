package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	cfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/adiazny/motiontag-days/internal/pkg/motiontag"
	"github.com/adiazny/motiontag-days/internal/pkg/notify"
)

type environmentVariables struct {
	BaseURL        string `env:"MOTIONTAG_BASE_URL" envDefault:"https://api.motion-tag.de/api"`
	Token          string `env:"MOTIONTAG_TOKEN"`
	Username       string `env:"MOTIONTAG_USERNAME"`
	Password       string `env:"MOTIONTAG_PASSWORD"`
	TimeoutSeconds int    `env:"MOTIONTAG_TIMEOUT_SECONDS" envDefault:"30"`
	TopicARN       string `env:"TOPIC_ARN"`
	TimeZone       string `env:"SUMMARY_TIME_ZONE" envDefault:"Europe/Berlin"`
}

func setup() (envVars *environmentVariables, err error) {
	_, err = maxprocs.Set()
	if err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	envVars = &environmentVariables{}

	err = env.Parse(envVars)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables %w", err)
	}

	return envVars, nil
}

type handler struct {
	log       *logrus.Entry
	envVars   *environmentVariables
	http      motiontag.HTTPClient
	publisher *notify.Publisher
}

func (h *handler) config() motiontag.Config {
	config := motiontag.DefaultConfig()
	config.BaseURL = h.envVars.BaseURL
	config.Timeout = time.Duration(h.envVars.TimeoutSeconds) * time.Second

	return config
}

func (h *handler) handle(ctx context.Context) (notify.Summary, error) {
	opts := []motiontag.Option{motiontag.WithLogger(h.log)}
	if h.http != nil {
		opts = append(opts, motiontag.WithHTTPClient(h.http))
	}

	creds := motiontag.Credentials{Username: h.envVars.Username, Password: h.envVars.Password}

	client, err := motiontag.Login(ctx, h.config(), h.envVars.Token, creds, opts...)
	if err != nil {
		return notify.Summary{}, err
	}

	dates, err := client.GetDays(ctx)
	if err != nil {
		return notify.Summary{}, err
	}

	summary := notify.NewSummary(dates)

	h.log.WithField("total_days", summary.TotalDays).Info("listed days")

	if h.publisher == nil {
		return summary, nil
	}

	if err := h.publisher.PublishSummary(ctx, summary); err != nil {
		return notify.Summary{}, err
	}

	return summary, nil
}

func HandleRequest(ctx context.Context) (notify.Summary, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.NewEntry(logger)
	log.WithField("component", "motiontag-days").Info("starting up")

	defer log.WithField("component", "motiontag-days").Info("shutting down")

	envVars, err := setup()
	if err != nil {
		log.WithError(err).Error()
		return notify.Summary{}, err
	}

	h := &handler{
		log:     log,
		envVars: envVars,
	}

	if envVars.TopicARN != "" {
		awsConfig, err := cfg.LoadDefaultConfig(ctx)
		if err != nil {
			log.WithError(err).Error()
			return notify.Summary{}, err
		}

		location, err := time.LoadLocation(envVars.TimeZone)
		if err != nil {
			log.WithError(err).Warn("falling back to UTC")
			location = time.UTC
		}

		h.publisher = &notify.Publisher{
			Log:      log,
			SNS:      sns.NewFromConfig(awsConfig),
			TopicARN: envVars.TopicARN,
			Location: location,
		}
	}

	summary, err := h.handle(ctx)
	if err != nil {
		log.WithError(err).Error()
		return notify.Summary{}, err
	}

	return summary, nil
}

func main() {
	lambda.Start(HandleRequest)
}
