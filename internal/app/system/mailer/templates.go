// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// InvitationEmailData holds data for the team invitation email.
type InvitationEmailData struct {
	SiteName     string
	TeamName     string
	FirstName    string
	FullName     string
	Email        string
	TempPassword string
	ConfirmLink  string
	ExpiresIn    string // e.g., "3 days"
}

var invitationHTML = template.Must(template.New("invitation").Parse(invitationHTMLTemplate))

// BuildInvitationEmail creates an invitation email with both HTML and text bodies.
func BuildInvitationEmail(data InvitationEmailData) Email {
	return Email{
		To:       data.Email,
		ToName:   data.FullName,
		Subject:  fmt.Sprintf("You've been invited to %s on %s", data.TeamName, data.SiteName),
		TextBody: buildInvitationText(data),
		HTMLBody: buildInvitationHTML(data),
	}
}

func buildInvitationText(data InvitationEmailData) string {
	var buf bytes.Buffer
	if data.FirstName != "" {
		buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.FirstName))
	}
	buf.WriteString(fmt.Sprintf("You have been invited to join %s on %s.\n\n", data.TeamName, data.SiteName))
	buf.WriteString(fmt.Sprintf("Your temporary password is: %s\n\n", data.TempPassword))
	buf.WriteString("Confirm your account by opening this link:\n")
	buf.WriteString(data.ConfirmLink + "\n\n")
	buf.WriteString(fmt.Sprintf("This link expires in %s. Please change your password after signing in.\n", data.ExpiresIn))
	return buf.String()
}

func buildInvitationHTML(data InvitationEmailData) string {
	var buf bytes.Buffer
	_ = invitationHTML.Execute(&buf, data)
	return buf.String()
}

const invitationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Team Invitation</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">{{if .FirstName}}Hi {{.FirstName}},{{else}}Hello,{{end}}</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                You have been invited to join <strong>{{.TeamName}}</strong>.
              </p>
              <p style="margin: 0 0 8px; font-size: 14px; color: #6b7280;">Your temporary password:</p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 16px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 20px; font-weight: 700; color: #1f2937; font-family: 'Courier New', monospace;">{{.TempPassword}}</span>
              </div>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ConfirmLink}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Confirm Account
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                This link expires in {{.ExpiresIn}}. Please change your password after signing in.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
