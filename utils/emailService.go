package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers an HTML email via SendGrid when an API key is configured,
// falling back to plain SMTP otherwise.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridApiKey != "" {
		return sendViaSendgrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendgrid(to []string, subject string, htmlBody string) error {
	from := sgmail.NewEmail("LMS", config.AppConfig.EmailSender)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	message := sgmail.NewV3Mail()
	message.SetFrom(from)
	message.AddPersonalizations(p)
	message.AddContent(sgmail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email: %d", resp.StatusCode)
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// EmailTemplate wraps body content in the standard HTML shell.
func EmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #212121; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message. Please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
