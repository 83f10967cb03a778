package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

var templates = template.Must(
	template.New("mail").Funcs(sprig.FuncMap()).Parse(`
{{define "otp"}}
<p>Hi {{.Name | title}},</p>
<p>Your verification code is <b>{{.Code}}</b>.</p>
<p>It expires in {{.TTL}}. If you did not sign up, ignore this email.</p>
{{end}}

{{define "reset"}}
<p>Hi {{.Name | title}},</p>
<p>A password reset was requested for your account. The link below is valid
for {{.TTL}} and can be used once:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, ignore this email.</p>
{{end}}

{{define "signup_notice"}}
<p>New {{.Role}} signup completed verification:</p>
<p>{{.Name | title}} &lt;{{.Email}}&gt;</p>
{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// RenderOTP builds the verification-code email body
func RenderOTP(name, code string, ttl time.Duration) (string, error) {
	return render("otp", map[string]any{
		"Name": name,
		"Code": code,
		"TTL":  ttl.String(),
	})
}

// RenderReset builds the password-reset email body
func RenderReset(name, link string, ttl time.Duration) (string, error) {
	return render("reset", map[string]any{
		"Name": name,
		"Link": link,
		"TTL":  ttl.String(),
	})
}

// RenderSignupNotice builds the operator-facing new-signup notice
func RenderSignupNotice(name, email, role string) (string, error) {
	return render("signup_notice", map[string]any{
		"Name":  name,
		"Email": email,
		"Role":  role,
	})
}
