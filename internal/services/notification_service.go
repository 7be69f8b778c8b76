package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

// NotificationService sends assignment and expiry notices over email and
// SMS. Both clients are optional; a nil client turns that channel into a
// logged no-op so local runs work without credentials.
type NotificationService struct {
	sendgridClient *sendgrid.Client
	twilioClient   *twilio.RestClient
	fromEmail      string
	fromPhone      string
}

func NewNotificationService(
	sendgridClient *sendgrid.Client,
	twilioClient *twilio.RestClient,
	fromEmail, fromPhone string,
) *NotificationService {
	return &NotificationService{
		sendgridClient: sendgridClient,
		twilioClient:   twilioClient,
		fromEmail:      fromEmail,
		fromPhone:      fromPhone,
	}
}

func (n *NotificationService) NotifyShiftAssigned(worker *models.Worker, sh *models.Shift) {
	subject := "You're booked: " + sh.Title
	body := fmt.Sprintf(
		"Hi %s, you've been approved for %q at %s, starting %s.",
		worker.FirstName, sh.Title, sh.Location, sh.StartTime.Format("Jan 2 3:04 PM"),
	)
	n.sendEmail(worker.Email, subject, body)
	n.sendSMS(worker.PhoneNumber, body)
}

func (n *NotificationService) NotifyApplicationRejected(worker *models.Worker, sh *models.Shift) {
	body := fmt.Sprintf(
		"Hi %s, your application for %q on %s was not selected.",
		worker.FirstName, sh.Title, sh.StartTime.Format("Jan 2"),
	)
	n.sendEmail(worker.Email, "Application update: "+sh.Title, body)
}

func (n *NotificationService) NotifyCredentialExpiring(worker *models.Worker, cred *models.Credential, daysLeft int) {
	body := fmt.Sprintf(
		"Hi %s, your %s (%s) expires in %d days. Renew it to stay eligible for new shifts.",
		worker.FirstName, cred.Name, cred.Issuer, daysLeft,
	)
	n.sendEmail(worker.Email, "Credential expiring: "+cred.Name, body)
	n.sendSMS(worker.PhoneNumber, body)
}

func (n *NotificationService) sendEmail(to, subject, body string) {
	if n.sendgridClient == nil || to == "" {
		utils.Logger.Debugf("email notification skipped (no client): %s", subject)
		return
	}
	msg := mail.NewSingleEmail(
		mail.NewEmail("CareVantage", n.fromEmail),
		subject,
		mail.NewEmail("", to),
		body,
		body,
	)
	if _, err := n.sendgridClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("failed to send email %q to %s", subject, to)
	}
}

func (n *NotificationService) sendSMS(to, body string) {
	if n.twilioClient == nil || to == "" {
		utils.Logger.Debug("sms notification skipped (no client)")
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.fromPhone)
	params.SetBody(body)
	if _, err := n.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warnf("failed to send sms to %s", to)
	}
}
