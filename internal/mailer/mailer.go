package mailer

import (
	"os"

	"gopkg.in/gomail.v2"
)

// SendListingCreatedEmail notifies the operator address that a listing
// was persisted. SMTP credentials come straight from the environment.
func SendListingCreatedEmail(toEmail, address string) error {
	from := os.Getenv("SMTP_EMAIL")
	password := os.Getenv("SMTP_PASSWORD")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New Listing Created")
	m.SetBody("text/plain", "The listing at '"+address+"' has been created successfully.")

	d := gomail.NewDialer("smtp.gmail.com", 587, from, password)
	return d.DialAndSend(m)
}
