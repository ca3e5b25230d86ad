package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches account mails. A failed dispatch aborts the operation
// that triggered it, registration even rolls back the user row
type Mailer interface {
	SendAccountActivation(to, token string) error
	SendPasswordReset(to, token string) error
}

// SMTPMailer sends through the SMTP relay from the mail.* config section
type SMTPMailer struct{}

func (SMTPMailer) SendAccountActivation(to, token string) error {
	link := fmt.Sprintf("%s/#/login?token=%s", frontendURL(), token)

	body := fmt.Sprintf("Click <a href='%s'>here</a> to activate your account.", link)
	return send(to, "Account Activation", body)
}

func (SMTPMailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/#/password-reset?reset=%s", frontendURL(), token)

	body := fmt.Sprintf("Click <a href='%s'>here</a> to reset your password.", link)
	return send(to, "Password Reset", body)
}

func frontendURL() string {
	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	return scheme + "://" + viper.GetString("host.domain")
}

func send(to, subject, body string) error {
	from := viper.GetString("mail.sender")
	if to == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
