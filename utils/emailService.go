package utils

import (
	"fmt"
	"log"
	"net/smtp"

	"quizpay/config"
)

// SendEmail sends an HTML email through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		return fmt.Errorf("email sender not configured")
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: QuizPay <%s>\r\n", from)
	for _, addr := range to {
		msg += fmt.Sprintf("To: %s\r\n", addr)
	}
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendPaymentReceipt emails a settled-payment receipt to the payer.
func SendPaymentReceipt(email, firstName string, amount float64, currency, reference string) error {
	if email == "" {
		return fmt.Errorf("payment has no payer email")
	}

	subject := "Your quiz payment receipt"
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Payment received</h2>
		<p>Hi %s,</p>
		<p>We have received your payment of <b>%.2f %s</b>.</p>
		<p>Reference: <code>%s</code></p>
		<p>You can now take your quiz. Good luck!</p>
	</body>
	</html>`, firstName, amount, currency, reference)

	return SendEmail([]string{email}, subject, body)
}
