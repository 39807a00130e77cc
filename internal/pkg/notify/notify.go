package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

const summaryDateLayout = "Monday, Jan 02 2006"

// SNSAPI is the part of *sns.Client the publisher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Summary struct {
	TotalDays int      `json:"total_days"`
	Dates     []string `json:"dates"`
}

func NewSummary(dates []string) Summary {
	if dates == nil {
		dates = []string{}
	}

	return Summary{
		TotalDays: len(dates),
		Dates:     dates,
	}
}

func (s Summary) LatestDay() string {
	for i := len(s.Dates) - 1; i >= 0; i-- {
		if s.Dates[i] != "" {
			return s.Dates[i]
		}
	}

	return "none"
}

type Publisher struct {
	Log      *logrus.Entry
	SNS      SNSAPI
	TopicARN string
	Location *time.Location
	Now      func() time.Time
}

func (p *Publisher) Message(summary Summary) string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	location := p.Location
	if location == nil {
		location = time.UTC
	}

	return fmt.Sprintf("Date: %s\nTotal days: %d\nLatest day: %s",
		now().In(location).Format(summaryDateLayout),
		summary.TotalDays,
		summary.LatestDay(),
	)
}

func (p *Publisher) PublishSummary(ctx context.Context, summary Summary) error {
	topicMsg := p.Message(summary)

	input := &sns.PublishInput{
		Message:  &topicMsg,
		TopicArn: &p.TopicARN,
	}

	_, err := p.SNS.Publish(ctx, input)
	if err != nil {
		if p.Log != nil {
			p.Log.WithError(err).Error("publishing summary")
		}
		return fmt.Errorf("error publishing to AWS SNS topic %s: %w", p.TopicARN, err)
	}

	return nil
}
