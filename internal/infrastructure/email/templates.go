package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// subjects maps template name to mail subject line.
var subjects = map[string]string{
	TemplateNewMessage:        "New message from {{.senderName}}",
	TemplateEmailVerification: "Verify your email address",
	TemplatePasswordReset:     "Reset your password",
	TemplateNewMatch:          "You have a new match!",
}

var bodies = template.Must(template.New("email").Parse(`
{{define "newMessage"}}
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>New message from {{.senderName}}</h2>
  <p style="color:#555">{{.preview}}</p>
  <a href="{{.url}}" style="display:inline-block;padding:10px 20px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:6px">Reply now</a>
</div>
{{end}}

{{define "emailVerification"}}
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Welcome, {{.fullName}}!</h2>
  <p>Confirm your email address to start finding roommates.</p>
  <a href="{{.url}}" style="display:inline-block;padding:10px 20px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:6px">Verify email</a>
</div>
{{end}}

{{define "passwordReset"}}
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Password reset requested</h2>
  <p>Click below to choose a new password. The link expires in one hour.</p>
  <a href="{{.url}}" style="display:inline-block;padding:10px 20px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:6px">Reset password</a>
  <p style="color:#888;font-size:12px">If you did not request this, ignore this mail.</p>
</div>
{{end}}

{{define "newMatch"}}
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>New match: {{.listingTitle}}</h2>
  <p>Compatibility score: <strong>{{.score}}%</strong></p>
  <a href="{{.url}}" style="display:inline-block;padding:10px 20px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:6px">View match</a>
</div>
{{end}}
`))

// render produces the subject and HTML body for a message.
func render(msg Message) (subject, body string, err error) {
	subjTmpl, ok := subjects[msg.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", msg.Template)
	}

	st, err := template.New("subject").Parse(subjTmpl)
	if err != nil {
		return "", "", err
	}
	var sb bytes.Buffer
	if err := st.Execute(&sb, msg.Data); err != nil {
		return "", "", err
	}

	var bb bytes.Buffer
	if err := bodies.ExecuteTemplate(&bb, msg.Template, msg.Data); err != nil {
		return "", "", err
	}
	return sb.String(), bb.String(), nil
}
