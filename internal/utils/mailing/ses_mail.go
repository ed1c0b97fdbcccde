package mailing

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesMailer struct {
	client    sesAPI
	fromEmail string
}

func NewSESMailer(ctx context.Context, region, fromEmail string) (Mailer, error) {
	if region == "" {
		region = "ap-southeast-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &sesMailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}, nil
}

func (m *sesMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) (string, error) {
	body := &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}}
	if textBody != "" {
		body.Text = &sestypes.Content{Data: aws.String(textBody)}
	}

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{to}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    body,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if out.MessageId == nil {
		return "", errors.New("ses returned no message id")
	}
	return *out.MessageId, nil
}
