package services

import (
	"fmt"
	"html"
	"os"

	"inforequests/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AlertMailer delivers alert emails to users
type AlertMailer interface {
	SendOverdueAlert(user models.User, request models.InfoRequest) error
}

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendOverdueAlert tells the user their info request has passed its response deadline
func (s *EmailService) SendOverdueAlert(user models.User, request models.InfoRequest) error {
	message := overdueAlertMessage(mail.NewEmail(s.fromName, s.fromEmail), user, request)

	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send overdue alert to %s: %d", user.Email, response.StatusCode)
	}
	return nil
}

func overdueAlertMessage(from *mail.Email, user models.User, request models.InfoRequest) *mail.SGMailV3 {
	to := mail.NewEmail(user.Name, user.Email)
	subject := fmt.Sprintf("Delayed response to your request '%s'", request.Title)
	dueBy := request.DateResponseRequiredBy.Format("Mon Jan 2, 2006")

	plainContent := fmt.Sprintf("Hello %s, the response to your request '%s' was due by %s and has not arrived yet. "+
		"You can chase it up with the authority.", user.Name, request.Title, dueBy)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>The response to your request '<strong>%s</strong>' was due by %s "+
		"and has not arrived yet.</p><p>You can chase it up with the authority.</p>",
		html.EscapeString(user.Name), html.EscapeString(request.Title), dueBy)

	return mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
}
