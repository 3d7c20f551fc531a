package utils

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"wedding_manager/config"
)

var verifyTmpl = template.Must(template.New("verify").Parse(`
<p>Hi {{.Name}},</p>
<p>Your wedding site <b>{{.SiteUrl}}</b> is almost ready.</p>
<p><a href="{{.VerifyUrl}}">Confirm your e-mail address</a> to unlock the dashboard.
The link expires in 48 hours.</p>
`))

var rsvpNotifyTmpl = template.Must(template.New("rsvpNotify").Parse(`
<p>{{.GuestName}} answered your invitation: <b>{{.Status}}</b>.</p>
{{if .Message}}<p>They wrote: “{{.Message}}”</p>{{end}}
<p><a href="{{.DashboardUrl}}">Open your guest list</a></p>
`))

var rsvpReminderTmpl = template.Must(template.New("rsvpReminder").Parse(`
<p>Hi {{.GuestName}},</p>
<p>{{.CoupleNames}} are getting married on {{.WeddingDate}} and are still
waiting for your answer.</p>
<p><a href="{{.RsvpUrl}}">Reply to the invitation</a></p>
`))

var passwordResetTmpl = template.Must(template.New("passwordReset").Parse(`
<p>Hi {{.Name}},</p>
<p>Someone asked to reset the password for your wedding site dashboard.</p>
<p><a href="{{.ResetUrl}}">Choose a new password</a>. The link expires in one
hour; if this was not you, ignore this mail.</p>
`))

type VerifyEmailData struct {
	Name      string
	SiteUrl   string
	VerifyUrl string
}

type PasswordResetData struct {
	Name     string
	ResetUrl string
}

type RSVPNotifyData struct {
	GuestName    string
	Status       string
	Message      string
	DashboardUrl string
}

type RSVPReminderData struct {
	GuestName   string
	CoupleNames string
	WeddingDate string
	RsvpUrl     string
}

// SendMail renders tmpl and delivers asynchronously so handlers never block
// on SMTP.
func SendMail(to, subject string, tmpl *template.Template, data any) {
	go func() {
		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Error().Err(err).Str("to", to).Msg("render mail template")
			return
		}

		port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(config.Config("SMTP_HOST"), port,
			config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("send mail")
		}
	}()
}

func SendVerificationEmail(to string, data VerifyEmailData, subject string) {
	SendMail(to, subject, verifyTmpl, data)
}

func SendPasswordReset(to string, data PasswordResetData, subject string) {
	SendMail(to, subject, passwordResetTmpl, data)
}

func SendRSVPNotification(to string, data RSVPNotifyData, subject string) {
	SendMail(to, subject, rsvpNotifyTmpl, data)
}

func SendRSVPReminder(to string, data RSVPReminderData, subject string) {
	SendMail(to, subject, rsvpReminderTmpl, data)
}
