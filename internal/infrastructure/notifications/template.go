package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

const otpSubject = "Your ClassHub OTP code"

const otpTextTemplate = `Hello,

Your ClassHub one-time code is {{.Code}}.
It expires in {{.Minutes}} minute{{if ne .Minutes 1}}s{{end}}.

If you did not ask for this code you can ignore this email.
`

const otpHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 480px; margin: 0 auto; padding: 20px;">
    <h2>ClassHub sign-in</h2>
    <p>Your one-time code is:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
    <p>It expires in {{.Minutes}} minute{{if ne .Minutes 1}}s{{end}}.</p>
    <p style="color: #888; font-size: 12px;">If you did not ask for this code you can ignore this email.</p>
  </div>
</body>
</html>
`

var (
	otpText = texttemplate.Must(texttemplate.New("otp-text").Parse(otpTextTemplate))
	otpHTML = htmltemplate.Must(htmltemplate.New("otp-html").Parse(otpHTMLTemplate))
)

// otpMessage is the rendered OTP email
type otpMessage struct {
	Subject string
	Text    string
	HTML    string
}

// renderOTP renders both bodies of the OTP email. Lifetimes under a minute
// are rounded up so the mail never says "0 minutes".
func renderOTP(code string, ttl time.Duration) (*otpMessage, error) {
	minutes := int((ttl + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	data := struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: minutes}

	var text, html bytes.Buffer
	if err := otpText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render otp text: %w", err)
	}
	if err := otpHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render otp html: %w", err)
	}

	return &otpMessage{
		Subject: otpSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
