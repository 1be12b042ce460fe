package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"learnloop/internal/models"
)

// EmailService sends transactional email via Amazon SES. When no sender
// address is configured the service is created disabled and every send
// becomes a logged no-op, so local development needs no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a new parent and shows their family code
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName, familyCode string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to LearnLoop!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.code { font-size: 28px; letter-spacing: 6px; font-weight: bold; text-align: center; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to LearnLoop!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Your family account is ready. Add your children, set up their daily learning rings, and watch the streaks grow.</p>
			<p>Your kids sign in with this family code plus their own PIN:</p>
			<p class="code">%s</p>
			<p><a href="%s">Open your dashboard</a> to get started.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from LearnLoop. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, familyCode, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your LearnLoop family account is ready. Add your children, set up their
daily learning rings, and watch the streaks grow.

Your kids sign in with this family code plus their own PIN:

    %s

Open your dashboard to get started: %s

---
This is an automated email from LearnLoop. Please do not reply.
`, toName, familyCode, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// ChildSummary is one child's line in the weekly summary email
type ChildSummary struct {
	Child         models.Child
	MinutesLogged int
	PointsEarned  int
	CurrentStreak int
}

// SendWeeklySummary mails a parent a digest of each child's past week
func (s *EmailService) SendWeeklySummary(ctx context.Context, parent *models.User, summaries []ChildSummary) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly summary to %s", parent.Email)
		return nil
	}
	if len(summaries) == 0 {
		return nil
	}

	subject := "Your LearnLoop weekly summary"

	var htmlRows, textRows strings.Builder
	for _, cs := range summaries {
		fmt.Fprintf(&htmlRows, `<tr><td>%s %s</td><td>%d min</td><td>%d pts</td><td>%d day streak</td></tr>`,
			cs.Child.AvatarEmoji, cs.Child.Name, cs.MinutesLogged, cs.PointsEarned, cs.CurrentStreak)
		fmt.Fprintf(&textRows, "- %s: %d minutes, %d points, %d day streak\n",
			cs.Child.Name, cs.MinutesLogged, cs.PointsEarned, cs.CurrentStreak)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { width: 100%%; border-collapse: collapse; }
		td { padding: 8px; border-bottom: 1px solid #ddd; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>This Week at LearnLoop</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Here's how your family did over the past week:</p>
			<table>%s</table>
			<p><a href="%s">See the full picture on your dashboard.</a></p>
		</div>
		<div class="footer">
			<p>This is an automated email from LearnLoop. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, parent.Name, htmlRows.String(), s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here's how your family did over the past week:

%s
See the full picture on your dashboard: %s

---
This is an automated email from LearnLoop. Please do not reply.
`, parent.Name, textRows.String(), s.appBaseURL)

	return s.sendEmail(ctx, parent.Email, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
